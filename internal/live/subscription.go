package live

import (
	"context"
	"sync"
)

// Fetch loads one snapshot of a query.
type Fetch[T any] func(ctx context.Context) (T, error)

// Subscription streams snapshots of a query on C until cancelled or a fetch fails.
type Subscription[T any] struct {
	C <-chan T

	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// Watch registers a query on h that depends on tables. The initial snapshot is
// fetched immediately; afterwards each batch of changes to tables yields one
// new snapshot. A slow reader never blocks writers: changes that arrive while a
// snapshot is pending are folded into the next fetch.
func Watch[T any](ctx context.Context, h *Hub, fetch Fetch[T], tables ...Table) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan T)
	s := &Subscription[T]{C: out, cancel: cancel, done: make(chan struct{})}

	id, w := h.register(tables)
	go func() {
		defer close(s.done)
		defer close(out)
		defer h.unregister(id)
		s.run(ctx, w, fetch, out)
	}()
	return s
}

func (s *Subscription[T]) run(ctx context.Context, w *watcher, fetch Fetch[T], out chan<- T) {
	for {
		snapshot, err := fetch(ctx)
		if err != nil {
			if ctx.Err() == nil {
				s.setErr(err)
			}
			return
		}
		select {
		case out <- snapshot:
		case <-ctx.Done():
			return
		}
		select {
		case <-w.notify:
		case <-ctx.Done():
			return
		}
	}
}

// Cancel detaches the subscription. C is closed once Cancel returns and no
// further snapshots are delivered. Calling it more than once is safe.
func (s *Subscription[T]) Cancel() {
	s.cancel()
	<-s.done
}

// Done is closed when the subscription has stopped.
func (s *Subscription[T]) Done() <-chan struct{} { return s.done }

// Err returns the fetch error that ended the subscription, if any.
func (s *Subscription[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription[T]) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}
