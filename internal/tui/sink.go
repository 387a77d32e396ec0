package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keydrill/internal/lesson"
)

type frameMsg lesson.Frame

type reportMsg lesson.Report

type noticeMsg string

// DoneMsg tells the model that the runner returned.
type DoneMsg struct {
	Err error
}

// Sender delivers messages to a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramSink forwards runner output to a Bubble Tea program.
type ProgramSink struct {
	p Sender

	mu      sync.Mutex
	notices []string
}

// NewProgramSink wraps p.
func NewProgramSink(p Sender) *ProgramSink {
	return &ProgramSink{p: p}
}

// Frame implements lesson.Sink.
func (s *ProgramSink) Frame(f lesson.Frame) {
	s.p.Send(frameMsg(f))
}

// Report implements lesson.Sink.
func (s *ProgramSink) Report(r lesson.Report) {
	s.p.Send(reportMsg(r))
}

// Notice implements lesson.Sink. Notices are also kept so they can be
// printed once the program has exited.
func (s *ProgramSink) Notice(text string) {
	s.mu.Lock()
	s.notices = append(s.notices, text)
	s.mu.Unlock()
	s.p.Send(noticeMsg(text))
}

// Notices returns every notice sent so far.
func (s *ProgramSink) Notices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.notices...)
}
