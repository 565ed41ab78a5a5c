package chatui

import (
	"fmt"
	"io"
	"sync"
)

// TerminalView renders session snapshots as a scrolling transcript: each
// new message is printed once, in order, so the newest entry is always the
// last line on screen. Snapshots older than the last one rendered are
// ignored.
type TerminalView struct {
	out    io.Writer
	errOut io.Writer

	mu         sync.Mutex
	printed    int
	lastState  State
	lastErrSeq int
	version    int
	echoUser   bool
}

// NewTerminalView writes messages to out and the inline error to errOut.
// When echoUser is false, user messages are not reprinted (the terminal
// already shows what was typed).
func NewTerminalView(out, errOut io.Writer, echoUser bool) *TerminalView {
	return &TerminalView{out: out, errOut: errOut, echoUser: echoUser}
}

func (v *TerminalView) Render(snap Snapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if snap.Version < v.version || len(snap.Messages) < v.printed {
		return
	}
	v.version = snap.Version

	for _, msg := range snap.Messages[v.printed:] {
		switch msg.Sender {
		case SenderUser:
			if v.echoUser {
				fmt.Fprintf(v.out, "You: %s\n", msg.Text)
			}
		default:
			fmt.Fprintf(v.out, "Bot: %s\n", msg.Text)
		}
	}
	v.printed = len(snap.Messages)

	if snap.State == StateSubmitting && v.lastState != StateSubmitting {
		fmt.Fprintln(v.out, "Bot is typing...")
	}
	v.lastState = snap.State

	if snap.Error != "" && snap.ErrorSeq > v.lastErrSeq {
		fmt.Fprintf(v.errOut, "! %s\n", snap.Error)
	}
	if snap.ErrorSeq > v.lastErrSeq {
		v.lastErrSeq = snap.ErrorSeq
	}
}
