package rabbitmq

import (
	"fmt"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"

	"vitrine/internal/models"
)

// ChangesExchange is the fanout exchange storefront change events go to.
const ChangesExchange = "storefront.changes"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	mu       sync.Mutex // guards channel publishes
	instance string
	logger   *zap.Logger
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
	// InstanceID tags published events so an instance can skip its own.
	InstanceID string
}

// NewClient creates a new RabbitMQ client.
// It connects to RabbitMQ, opens a channel and declares the changes exchange.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ChangesExchange, // name
		"fanout",        // kind
		true,            // durable
		false,           // auto-deleted
		false,           // internal
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s exchange: %w", ChangesExchange, err)
	}

	logger.Info("RabbitMQ client connected", zap.String("exchange", ChangesExchange), zap.String("instance", cfg.InstanceID))

	return &Client{
		conn:     conn,
		channel:  ch,
		instance: cfg.InstanceID,
		logger:   logger,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishChange publishes a change event to the changes exchange, stamped
// with this instance's id.
func (c *Client) PublishChange(event models.ChangeEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	event.Origin = c.instance
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event to JSON: %w", err)
	}

	c.mu.Lock()
	err = c.channel.Publish(
		ChangesExchange, // exchange
		"",              // routing key: ignored by fanout
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		})
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Debug("Sent change event", zap.ByteString("body", body))
	return nil
}

// ConsumeChanges binds an exclusive queue to the changes exchange and
// hands every event published by another instance to handler. Events are
// acked when handler returns nil and dropped (nack without requeue)
// otherwise; a later event triggers a fresh reload anyway.
func (c *Client) ConsumeChanges(handler func(event models.ChangeEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := c.channel.QueueDeclare(
		"",    // name: server-generated
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue for consuming: %w", err)
	}
	if err := c.channel.QueueBind(queue.Name, "", ChangesExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag
		false,      // auto-ack
		true,       // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("Waiting for change events", zap.String("queue", queue.Name))

	go func() {
		for msg := range msgs {
			if err := c.dispatch(msg.Body, handler); err != nil {
				c.logger.Error("Error processing change event", zap.Uint64("tag", msg.DeliveryTag), zap.Error(err))
				if nackErr := msg.Nack(false, false); nackErr != nil {
					c.logger.Error("Error nacking message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(nackErr))
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				c.logger.Error("Error acking message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(ackErr))
			}
		}
	}()

	return nil
}

func (c *Client) dispatch(body []byte, handler func(event models.ChangeEvent) error) error {
	var event models.ChangeEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("malformed change event: %w", err)
	}
	if event.Origin != "" && event.Origin == c.instance {
		return nil
	}
	return handler(event)
}
