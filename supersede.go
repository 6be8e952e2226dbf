package sdk

import (
	"context"
	"sync"
)

// Superseder lets a caller drop stale results when a newer request replaces an
// older one, e.g. a search box firing on every keystroke. Begin cancels the
// previous request's context and hands out a Ticket; only the newest Ticket
// is Current.
//
// The zero value is ready to use. Call Stop when the owner goes away.
type Superseder struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Ticket identifies one generation of a Superseder.
type Ticket struct {
	s   *Superseder
	gen uint64
}

// Begin starts a new generation derived from ctx and cancels the previous one.
// The returned context stays live until the next Begin or Stop.
func (s *Superseder) Begin(ctx context.Context) (context.Context, Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	return ctx, Ticket{s: s, gen: s.gen}
}

// Stop cancels the current generation so no outstanding Ticket is Current.
func (s *Superseder) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}

// Current reports whether t is still the newest generation.
func (t Ticket) Current() bool {
	if t.s == nil {
		return false
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.s.gen == t.gen
}

// Generation returns the ticket's generation number, starting at 1.
func (t Ticket) Generation() uint64 { return t.gen }

// release cancels t's context once its work is done. It reports whether t
// was still current.
func (s *Superseder) release(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != t.gen {
		return false
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return true
}

// RunLatest runs fn under a new generation of s. It reports ok=false, with a
// nil error, when a later Begin superseded this call before its result could
// be used. The context passed to fn is cancelled when RunLatest returns.
func RunLatest[T any](ctx context.Context, s *Superseder, fn func(context.Context) (T, error)) (T, bool, error) {
	var zero T
	runCtx, ticket := s.Begin(ctx)
	out, err := fn(runCtx)
	if !s.release(ticket) {
		return zero, false, nil
	}
	if err != nil {
		return zero, true, err
	}
	return out, true, nil
}
