package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// MaxRetries is how often a message is republished after failed delivery
// before it is dropped.
const MaxRetries = 3

const retryHeader = "x-retry"

// ErrNotConfirmed is returned when the broker rejected a published message.
var ErrNotConfirmed = errors.New("the broker did not confirm the notification")

// confirmation is the broker's answer to a published message.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

// AMQPClient publishes notifications to a durable queue and consumes them.
//
// The channel runs in confirm mode. A closed channel or connection is
// reopened on the next publish.
type AMQPClient struct {
	url          string
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string

	publisher func(ctx context.Context, msg amqp091.Publishing) (confirmation, error)

	// channels are not safe for concurrent publishing
	mu sync.Mutex
}

func NewAMQPClient(url, exchangeName, queueName string) (*AMQPClient, error) {
	client := &AMQPClient{
		url:          url,
		exchangeName: exchangeName,
		queueName:    queueName,
	}
	client.publisher = client.publishConfirmed

	if err := client.open(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

// open dials the broker if the connection is not usable and opens a new
// channel in confirm mode with the exchange and queue declared.
func (c *AMQPClient) open() error {
	if c.conn == nil || c.conn.IsClosed() {
		conn, err := amqp091.Dial(c.url)
		if err != nil {
			return fmt.Errorf("dial AMQP: %w", err)
		}
		c.conn = conn
	}

	channel, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	c.channel = channel

	if err := c.channel.Confirm(false); err != nil {
		return fmt.Errorf("enable publisher confirms: %w", err)
	}

	if err := c.setup(); err != nil {
		return fmt.Errorf("setup exchange and queue: %w", err)
	}

	return nil
}

func (c *AMQPClient) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// The queue name doubles as routing key on the direct exchange
	err = c.channel.QueueBind(c.queueName, c.queueName, c.exchangeName, false, nil)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// Enqueue publishes the message. A nil error means the broker confirmed it.
func (c *AMQPClient) Enqueue(ctx context.Context, m Message) error {
	return c.publish(ctx, m, 0)
}

func (c *AMQPClient) publish(ctx context.Context, m Message, retry int32) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	confirm, err := c.publisher(ctx, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
		Headers:      amqp091.Table{retryHeader: retry},
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("wait for publisher confirm: %w", err)
	}

	if !acked {
		return ErrNotConfirmed
	}

	log.Debug().Str("kind", string(m.Kind)).Str("queue", c.queueName).Msg("published notification")
	return nil
}

// publishConfirmed publishes msg on the channel, reopening it first if the
// broker closed it.
func (c *AMQPClient) publishConfirmed(ctx context.Context, msg amqp091.Publishing) (confirmation, error) {
	if c.channel == nil || c.channel.IsClosed() {
		log.Warn().Str("queue", c.queueName).Msg("AMQP channel closed, reconnecting")
		if err := c.open(); err != nil {
			return nil, fmt.Errorf("reconnect: %w", err)
		}
	}

	dc, err := c.channel.PublishWithDeferredConfirmWithContext(
		ctx,
		c.exchangeName, // exchange
		c.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		msg,
	)
	if err != nil {
		return nil, err
	}

	// Without confirm mode there is nothing to wait for
	if dc == nil {
		return nil, ErrNotConfirmed
	}

	return dc, nil
}

// Consume delivers messages from the queue through sender until ctx is
// cancelled.
//
// Messages that cannot be decoded are dropped. Messages whose delivery fails
// are republished with an incremented retry header until MaxRetries is reached.
func (c *AMQPClient) Consume(ctx context.Context, sender Sender) error {
	deliveries, err := c.consume(false)
	if err != nil {
		return err
	}

	log.Info().Str("queue", c.queueName).Msg("consuming notifications")

	for {
		select {
		case <-ctx.Done():
			log.Info().Err(ctx.Err()).Msg("stopping notification consumer")
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				log.Warn().Str("queue", c.queueName).Msg("delivery channel closed, reconnecting")

				deliveries, err = c.consume(true)
				if err != nil {
					return err
				}
				continue
			}

			c.handle(ctx, sender, delivery)
		}
	}
}

// consume starts a consumer on the queue, reopening the channel first when
// reopen is set.
func (c *AMQPClient) consume(reopen bool) (<-chan amqp091.Delivery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if reopen {
		if err := c.open(); err != nil {
			return nil, fmt.Errorf("reconnect: %w", err)
		}
	}

	deliveries, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return nil, fmt.Errorf("start consuming: %w", err)
	}

	return deliveries, nil
}

func (c *AMQPClient) handle(ctx context.Context, sender Sender, delivery amqp091.Delivery) {
	var m Message
	if err := json.Unmarshal(delivery.Body, &m); err != nil {
		log.Error().Err(err).Msg("dropping undecodable notification")
		_ = delivery.Nack(false, false)
		return
	}

	err := sender.Send(ctx, m)
	if err == nil {
		_ = delivery.Ack(false)
		return
	}

	retry := retryCount(delivery.Headers)
	logger := log.With().Str("kind", string(m.Kind)).Str("recipient", m.Recipient).Int32("retry", retry).Logger()

	if retry >= MaxRetries {
		logger.Error().Err(err).Msg("dropping notification after repeated delivery failures")
		_ = delivery.Nack(false, false)
		return
	}

	if perr := c.publish(ctx, m, retry+1); perr != nil {
		logger.Error().Err(perr).Msg("could not republish notification, requeueing")
		_ = delivery.Nack(false, true)
		return
	}

	logger.Warn().Err(err).Msg("notification delivery failed, republished")
	_ = delivery.Ack(false)
}

func retryCount(headers amqp091.Table) int32 {
	switch v := headers[retryHeader].(type) {
	case int32:
		return v
	case int64:
		return int32(v)
	case int:
		return int32(v)
	default:
		return 0
	}
}

func (c *AMQPClient) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
