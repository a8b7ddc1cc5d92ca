// Package capture holds the speech capture session: a small state machine
// that turns incremental recognition events into a single running transcript.
package capture

import (
	"errors"
	"strings"
)

type State int

const (
	StateIdle State = iota
	StateListening
)

var (
	ErrAlreadyListening = errors.New("capture session already listening")
	ErrNotListening     = errors.New("capture session not listening")
)

// Segment is one recognizer result chunk. Final segments never change again;
// an interim segment is replaced by the next event until it finalizes.
type Segment struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}

// Session accumulates finalized text permanently and keeps only the latest
// interim text, so the recognizer is free to revise interim results before
// they finalize.
type Session struct {
	state   State
	final   string
	interim string
}

func NewSession() *Session {
	return &Session{state: StateIdle}
}

func (s *Session) State() State {
	return s.state
}

// Start clears any previous transcript and begins listening.
func (s *Session) Start() error {
	if s.state == StateListening {
		return ErrAlreadyListening
	}
	s.state = StateListening
	s.final = ""
	s.interim = ""
	return nil
}

// Result applies one recognition event and returns the running transcript.
func (s *Session) Result(segments []Segment) (string, error) {
	if s.state != StateListening {
		return "", ErrNotListening
	}

	interim := ""
	for _, seg := range segments {
		if seg.Final {
			s.final += seg.Text + " "
		} else {
			interim += seg.Text
		}
	}
	s.interim = interim

	return s.Transcript(), nil
}

// Stop ends the session. It returns the trimmed transcript and whether it
// should be committed as a note; an all-whitespace transcript commits nothing.
func (s *Session) Stop() (string, bool) {
	if s.state != StateListening {
		return "", false
	}
	s.state = StateIdle

	text := strings.TrimSpace(s.final + s.interim)
	s.final = ""
	s.interim = ""

	return text, text != ""
}

// End handles a recognizer-initiated stop (silence timeout and the like).
// Only an explicit Stop commits; the transcript stays visible until the next
// Start so a partial capture is never silently saved.
func (s *Session) End() {
	s.state = StateIdle
}

func (s *Session) Transcript() string {
	return s.final + s.interim
}
