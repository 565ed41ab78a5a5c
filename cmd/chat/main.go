// DevChat terminal client
//
// Chat with the front-end best practices assistant from your terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"devchat/internal/chatui"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "devchat",
	Short: "DevChat - Front-end best practices chat",
	Long: `DevChat talks to the DevChat backend from your terminal.

  devchat                                   Start an interactive chat
  devchat ask "What is semantic HTML?"      Ask a single question`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send one message and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("CHAT_SERVER_URL", "http://localhost:3000"), "DevChat backend URL")
	rootCmd.AddCommand(askCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session := chatui.NewSession(chatui.NewClient(serverURL, nil))
	view := chatui.NewTerminalView(cmd.OutOrStdout(), cmd.ErrOrStderr(), false)
	session.OnChange(view.Render)
	view.Render(session.Snapshot())

	fmt.Fprintln(cmd.OutOrStdout(), "Type a message and press Enter. /quit to exit.")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(cmd.OutOrStdout(), "> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "/quit" {
			break
		}
		if strings.TrimSpace(line) != "" {
			session.ClearError()
		}

		// Failures are already rendered by the view.
		session.Submit(ctx, line)

		if ctx.Err() != nil {
			break
		}
	}
	return scanner.Err()
}

func runAsk(cmd *cobra.Command, args []string) error {
	session := chatui.NewSession(chatui.NewClient(serverURL, nil))

	err := session.Submit(cmd.Context(), strings.Join(args, " "))
	snap := session.Snapshot()
	if errors.Is(err, chatui.ErrEmptyMessage) {
		return errors.New(snap.Error)
	}
	if err != nil {
		return errors.New(chatui.DescribeError(err))
	}

	last := snap.Messages[len(snap.Messages)-1]
	fmt.Fprintln(cmd.OutOrStdout(), last.Text)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
