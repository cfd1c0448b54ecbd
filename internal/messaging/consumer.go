// Package messaging owns the RabbitMQ connection and the always-acknowledge
// consumption loop feeding the event processor.
package messaging

import (
	"context"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler receives the raw body of one delivered message.
type Handler func(ctx context.Context, body []byte)

type MessageConsumer interface {
	Connect() error
	Consume(queueName string, handler Handler) error
	Disconnect() error
}

type rabbitMQConsumer struct {
	url string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewRabbitMQConsumer(url string) MessageConsumer {
	return &rabbitMQConsumer{url: url}
}

func (c *rabbitMQConsumer) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil && !c.conn.IsClosed() {
		return nil
	}

	log.Println("Connecting to RabbitMQ...")
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	// Connection-level errors are logged; reconnect policy is left to the
	// supervisor.
	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		if amqpErr := <-closed; amqpErr != nil {
			log.Printf("RabbitMQ connection closed: %v", amqpErr)
		}
	}()

	c.conn = conn
	c.channel = channel
	log.Println("Connected to RabbitMQ successfully")
	return nil
}

// Consume delivers each message to handler and acknowledges it regardless of
// the processing outcome. Acknowledge-and-log is deliberate: a poison message
// is dropped instead of being redelivered forever.
func (c *rabbitMQConsumer) Consume(queueName string, handler Handler) error {
	c.mu.Lock()
	channel := c.channel
	c.mu.Unlock()

	if channel == nil {
		return fmt.Errorf("rabbitmq channel not initialized")
	}

	if _, err := channel.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	deliveries, err := channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consumer on queue %s: %w", queueName, err)
	}

	log.Printf("Waiting for messages from queue: %s", queueName)

	go func() {
		for delivery := range deliveries {
			handler(context.Background(), delivery.Body)

			if err := delivery.Ack(false); err != nil {
				log.Printf("Failed to acknowledge message: %v", err)
			}
		}
		log.Printf("Delivery stream for queue %s closed", queueName)
	}()

	return nil
}

func (c *rabbitMQConsumer) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			log.Printf("Error closing RabbitMQ channel: %v", err)
		}
		c.channel = nil
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			log.Printf("Error closing RabbitMQ connection: %v", err)
		}
		c.conn = nil
	}

	log.Println("Disconnected from RabbitMQ")
	return nil
}
