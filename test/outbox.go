package test

import (
	"context"
	"sync"

	"github.com/pennywise-app/backend/internal/notify"
)

// Outbox is a notify.Queue that records all messages instead of delivering them.
//
// When Err is set, Enqueue rejects messages with it.
type Outbox struct {
	mu       sync.Mutex
	messages []notify.Message
	Err      error
}

func (o *Outbox) Enqueue(_ context.Context, m notify.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.Err != nil {
		return o.Err
	}

	o.messages = append(o.messages, m)
	return nil
}

// Messages returns all accepted messages.
func (o *Outbox) Messages() []notify.Message {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]notify.Message(nil), o.messages...)
}

// Kind returns all accepted messages of the given kind.
func (o *Outbox) Kind(kind notify.Kind) []notify.Message {
	var out []notify.Message
	for _, m := range o.Messages() {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

// Fail makes all further Enqueue calls return err. A nil err restores normal operation.
func (o *Outbox) Fail(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Err = err
}
