// Package events publishes tournament events to an AMQP topic exchange.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/championship-manager/services"
	"github.com/streadway/amqp"
)

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type dialFunc func() (*amqp.Connection, Channel, error)

type AMQPPublisher struct {
	exchange string
	dial     dialFunc
	logger   *slog.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel Channel
}

// NewAMQPPublisher connects to the broker and declares a durable topic exchange.
func NewAMQPPublisher(url, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	dial := func() (*amqp.Connection, Channel, error) {
		conn, err := amqp.DialConfig(url, amqp.Config{
			Heartbeat: 60 * time.Second,
			Locale:    "en_US",
		})
		if err != nil {
			return nil, nil, fmt.Errorf("dial failed: %w", err)
		}
		ch, err := conn.Channel()
		if err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("failed to create channel: %w", err)
		}
		if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
		}
		return conn, ch, nil
	}

	p := newPublisher(exchange, dial, logger)
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func newPublisher(exchange string, dial dialFunc, logger *slog.Logger) *AMQPPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &AMQPPublisher{exchange: exchange, dial: dial, logger: logger}
}

func (p *AMQPPublisher) connect() error {
	conn, ch, err := p.dial()
	if err != nil {
		return err
	}
	p.conn, p.channel = conn, ch
	p.logger.Info("connected to AMQP broker", slog.String("exchange", p.exchange))
	return nil
}

// RoutingKey is tournament.<id>.<event type in lower case>.
func RoutingKey(event services.Event) string {
	return "tournament." + event.TournamentID + "." + strings.ToLower(string(event.Type))
}

// Notify implements services.Notifier. A failed publish is retried once on a
// fresh connection.
func (p *AMQPPublisher) Notify(ctx context.Context, event services.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		Body:         body,
	}
	key := RoutingKey(event)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		if err = p.channel.Publish(p.exchange, key, false, false, msg); err == nil {
			return nil
		}
		p.logger.WarnContext(ctx, "AMQP publish failed, reconnecting", slog.String("routing_key", key), slog.Any("error", err))
		p.closeLocked()
	}

	if err := p.connect(); err != nil {
		return fmt.Errorf("failed to reconnect to AMQP broker: %w", err)
	}
	if err := p.channel.Publish(p.exchange, key, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", key, err)
	}
	return nil
}

func (p *AMQPPublisher) closeLocked() {
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
	return nil
}
