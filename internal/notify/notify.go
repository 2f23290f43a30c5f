// Package notify delivers email notifications out of band.
//
// Producers hand messages to a Queue and return immediately. Delivery through
// a Sender happens on background workers, either in-process (Worker) or in a
// separate notify-worker process consuming an AMQP queue (AMQPClient).
package notify

import (
	"context"
	"errors"
)

var (
	ErrQueueFull   = errors.New("the notification queue is full")
	ErrQueueClosed = errors.New("the notification queue is closed")
)

// Kind identifies the template a message was rendered from.
type Kind string

const (
	KindBudgetAlert   Kind = "budget_alert"
	KindWelcome       Kind = "welcome"
	KindPasswordReset Kind = "password_reset"
)

// Message is a plain text email.
type Message struct {
	Kind      Kind   `json:"kind"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Sender delivers a message to its recipient.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// Queue accepts messages for asynchronous delivery.
//
// A nil error means the message was accepted and will be delivered by a
// worker. Enqueue must not wait for delivery.
type Queue interface {
	Enqueue(ctx context.Context, m Message) error
}
