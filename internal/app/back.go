package app

// BackRegistrar is the host's back navigation hook. Register installs
// handler and returns a function that removes it again.
type BackRegistrar interface {
	Register(handler func()) (dispose func())
}

// BackStack is a BackRegistrar where the most recently registered handler
// wins. Hosts feed it with Back whenever their platform signals back.
type BackStack struct {
	handlers []*backEntry
}

type backEntry struct {
	fn func()
}

func (b *BackStack) Register(handler func()) func() {
	e := &backEntry{fn: handler}
	b.handlers = append(b.handlers, e)
	return func() {
		for i, h := range b.handlers {
			if h == e {
				b.handlers = append(b.handlers[:i], b.handlers[i+1:]...)
				return
			}
		}
	}
}

// Back invokes the top handler and reports whether one was registered.
func (b *BackStack) Back() bool {
	if len(b.handlers) == 0 {
		return false
	}
	b.handlers[len(b.handlers)-1].fn()
	return true
}
