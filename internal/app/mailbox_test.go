package app

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailboxOrder(t *testing.T) {
	var m Mailbox
	var got []int
	for i := 0; i < 3; i++ {
		m.Post(func() { got = append(got, i) })
	}

	assert.Equal(t, 3, m.Drain())
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, 0, m.Drain())
}

func TestMailboxPostDuringDrain(t *testing.T) {
	var m Mailbox
	ran := 0
	m.Post(func() {
		ran++
		m.Post(func() { ran++ })
	})

	assert.Equal(t, 1, m.Drain())
	assert.Equal(t, 1, ran)
	assert.Equal(t, 1, m.Drain())
	assert.Equal(t, 2, ran)
}

func TestMailboxConcurrentPost(t *testing.T) {
	var m Mailbox
	var wg sync.WaitGroup
	count := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Post(func() { count++ })
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, m.Drain())
	assert.Equal(t, 50, count)
}
