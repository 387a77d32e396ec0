package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyQueue hands key presses from the Bubble Tea loop to the lesson runner
// in arrival order. Push never blocks.
type KeyQueue struct {
	mu    sync.Mutex
	keys  []tea.KeyMsg
	ready chan struct{}
}

// NewKeyQueue returns an empty queue.
func NewKeyQueue() *KeyQueue {
	return &KeyQueue{ready: make(chan struct{}, 1)}
}

// Push appends a key press.
func (q *KeyQueue) Push(msg tea.KeyMsg) {
	q.mu.Lock()
	q.keys = append(q.keys, msg)
	q.mu.Unlock()
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// NextKey blocks until a key is queued or ctx is done.
func (q *KeyQueue) NextKey(ctx context.Context) (tea.KeyMsg, error) {
	for {
		q.mu.Lock()
		if len(q.keys) > 0 {
			msg := q.keys[0]
			q.keys = q.keys[1:]
			q.mu.Unlock()
			return msg, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return tea.KeyMsg{}, ctx.Err()
		case <-q.ready:
		}
	}
}
