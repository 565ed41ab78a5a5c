package chatui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	Greeting      = "Hello! I am an expert in Front-end Development Best Practices. Ask me anything on this topic!"
	MsgEmptyInput = "Message cannot be empty."
)

var (
	ErrEmptyMessage = errors.New("message cannot be empty")
	ErrBusy         = errors.New("a message is already being sent")
)

type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// DisplayMessage is one entry of the transcript. Entries are never changed
// or removed once appended.
type DisplayMessage struct {
	ID     string
	Text   string
	Sender Sender
}

// Snapshot is a copy of the session at one point in time.
type Snapshot struct {
	State    State
	Messages []DisplayMessage
	Error    string
	// ErrorSeq increases every time an error is raised, even if the text
	// repeats.
	ErrorSeq int
	// Version orders snapshots delivered to the observer. Observers run
	// outside the session lock and may see them out of order.
	Version int
}

// Backend sends one message and returns the reply.
type Backend interface {
	Send(ctx context.Context, message string) (string, error)
}

// Session holds one conversation view in memory.
type Session struct {
	backend Backend
	now     func() time.Time

	mu       sync.Mutex
	state    State
	messages []DisplayMessage
	errText  string
	errSeq   int
	seq      int
	version  int
	onChange func(Snapshot)
}

// NewSession starts a conversation with the greeting already in the transcript.
func NewSession(backend Backend) *Session {
	return &Session{
		backend:  backend,
		now:      time.Now,
		messages: []DisplayMessage{{ID: "initial-bot-msg", Text: Greeting, Sender: SenderBot}},
	}
}

// OnChange registers fn to be called after every transcript, state or
// error change. Only one observer is kept.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ClearError hides the inline error, e.g. when the user starts typing.
func (s *Session) ClearError() {
	s.mu.Lock()
	changed := s.errText != ""
	s.errText = ""
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Submit sends input to the backend and records the outcome in the
// transcript. Whitespace-only input never reaches the backend. Submit
// returns ErrBusy while another submission is in flight. Backend failures
// are returned after being rendered into the transcript.
func (s *Session) Submit(ctx context.Context, input string) error {
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return ErrBusy
	}
	if strings.TrimSpace(input) == "" {
		s.setErrorLocked(MsgEmptyInput)
		s.mu.Unlock()
		s.notify()
		return ErrEmptyMessage
	}
	s.errText = ""
	s.appendLocked("user", SenderUser, input)
	s.state = StateSubmitting
	s.mu.Unlock()
	s.notify()

	reply, err := s.backend.Send(ctx, input)

	s.mu.Lock()
	if err != nil {
		text := DescribeError(err)
		s.appendLocked("error", SenderBot, text)
		s.setErrorLocked(text)
	} else {
		s.appendLocked("bot", SenderBot, reply)
		s.errText = ""
	}
	s.state = StateIdle
	s.mu.Unlock()
	s.notify()

	return err
}

func (s *Session) appendLocked(prefix string, sender Sender, text string) {
	s.seq++
	s.messages = append(s.messages, DisplayMessage{
		ID:     fmt.Sprintf("%s-%d-%d", prefix, s.now().UnixMilli(), s.seq),
		Text:   text,
		Sender: sender,
	})
}

func (s *Session) setErrorLocked(text string) {
	s.errText = text
	s.errSeq++
}

func (s *Session) snapshotLocked() Snapshot {
	msgs := make([]DisplayMessage, len(s.messages))
	copy(msgs, s.messages)
	return Snapshot{State: s.state, Messages: msgs, Error: s.errText, ErrorSeq: s.errSeq, Version: s.version}
}

func (s *Session) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.version++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}
