package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Worker is an in-process Queue backed by a buffered channel.
type Worker struct {
	sender   Sender
	messages chan Message
	workers  int
	timeout  time.Duration

	mu     sync.RWMutex
	closed bool
}

// NewWorker returns a Worker buffering up to size messages, delivered by
// the given number of goroutines once Run is called.
func NewWorker(sender Sender, size, workers int) *Worker {
	if size < 1 {
		size = 1
	}

	if workers < 1 {
		workers = 1
	}

	return &Worker{
		sender:   sender,
		messages: make(chan Message, size),
		workers:  workers,
		timeout:  30 * time.Second,
	}
}

// Enqueue adds a message to the queue. It never blocks. When the buffer is
// full, ErrQueueFull is returned.
func (w *Worker) Enqueue(_ context.Context, m Message) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return ErrQueueClosed
	}

	select {
	case w.messages <- m:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting messages. Messages already queued are still delivered
// by Run.
func (w *Worker) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	w.closed = true
	close(w.messages)
}

// Run delivers queued messages until ctx is cancelled and the queue is drained.
func (w *Worker) Run(ctx context.Context) error {
	g := new(errgroup.Group)

	for i := 0; i < w.workers; i++ {
		g.Go(func() error {
			for m := range w.messages {
				w.deliver(m)
			}
			return nil
		})
	}

	<-ctx.Done()
	w.Close()

	return g.Wait()
}

func (w *Worker) deliver(m Message) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	err := w.sender.Send(ctx, m)
	if err != nil {
		log.Error().Err(err).Str("kind", string(m.Kind)).Str("recipient", m.Recipient).Msg("notification delivery failed")
		return
	}

	log.Debug().Str("kind", string(m.Kind)).Str("recipient", m.Recipient).Msg("notification delivered")
}
