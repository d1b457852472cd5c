package app

import "sync"

// Mailbox queues callbacks posted from fetch goroutines until the UI
// goroutine drains them, so every state change happens on one goroutine.
type Mailbox struct {
	mu      sync.Mutex
	pending []func()
}

func (m *Mailbox) Post(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending = append(m.pending, fn)
}

// Drain runs everything posted so far in posting order and returns how many
// callbacks ran. Callbacks posted while draining run on the next call.
func (m *Mailbox) Drain() int {
	m.mu.Lock()
	batch := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
