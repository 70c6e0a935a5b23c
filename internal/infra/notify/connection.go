package notify

import (
	"fmt"
	"log/slog"
	"time"

	"restobook/internal/pkg/config"

	"github.com/rabbitmq/amqp091-go"
)

// Connection wraps the AMQP connection and declares the events exchange.
type Connection struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	url      string
	exchange string
}

func Connect(cfg config.AMQPConfig) (*Connection, error) {
	c := &Connection{
		url:      cfg.URL,
		exchange: cfg.Exchange,
	}
	if err := c.connect(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Connection) connect() error {
	const maxRetries = 5
	var err error

	for i := 0; i < maxRetries; i++ {
		c.conn, err = amqp091.Dial(c.url)
		if err == nil {
			c.channel, err = c.conn.Channel()
			if err == nil {
				if err = c.declareExchange(); err == nil {
					return nil
				}
				c.close()
			} else {
				_ = c.conn.Close()
			}
		}

		if i < maxRetries-1 {
			wait := time.Duration(i+1) * 2 * time.Second
			slog.Warn("rabbitmq connection failed, retrying",
				"wait", wait.String(),
				"error", err.Error())
			time.Sleep(wait)
		}
	}

	return fmt.Errorf("failed to connect to rabbitmq after %d attempts: %w", maxRetries, err)
}

func (c *Connection) declareExchange() error {
	err := c.channel.ExchangeDeclare(
		c.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", c.exchange, err)
	}
	return nil
}

func (c *Connection) Exchange() string {
	return c.exchange
}

func (c *Connection) Channel() *amqp091.Channel {
	return c.channel
}

func (c *Connection) IsClosed() bool {
	return c.conn == nil || c.conn.IsClosed()
}

func (c *Connection) Reconnect() error {
	c.close()
	return c.connect()
}

func (c *Connection) Close() error {
	return c.close()
}

func (c *Connection) close() error {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
