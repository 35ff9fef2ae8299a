package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	dialTimeout    = 3 * time.Second
	publishTimeout = 5 * time.Second
)

// ErrBrokerUnavailable is returned while the publisher has no open channel.
// A reconnect is already running in the background when it is returned.
var ErrBrokerUnavailable = errors.New("rabbitmq unavailable")

type amqpConn interface {
	IsClosed() bool
	Close() error
}

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// AMQPPublisher writes order events to a durable topic exchange.
type AMQPPublisher struct {
	url      string
	exchange string
	log      *logger.Logger
	dial     func() (amqpConn, amqpChannel, error)

	mu           sync.Mutex
	conn         amqpConn
	ch           amqpChannel
	reconnecting bool
	closed       bool
}

// DialAMQP connects and declares the exchange.
func DialAMQP(url, exchange string, log *logger.Logger) (*AMQPPublisher, error) {
	p := newAMQPPublisher(url, exchange, log, nil)
	conn, ch, err := p.dial()
	if err != nil {
		return nil, err
	}
	p.conn, p.ch = conn, ch
	return p, nil
}

func newAMQPPublisher(url, exchange string, log *logger.Logger, dial func() (amqpConn, amqpChannel, error)) *AMQPPublisher {
	p := &AMQPPublisher{url: url, exchange: exchange, log: log, dial: dial}
	if p.dial == nil {
		p.dial = p.dialBroker
	}
	return p
}

func (p *AMQPPublisher) dialBroker() (amqpConn, amqpChannel, error) {
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("declare exchange %s: %w", p.exchange, err)
	}
	return conn, ch, nil
}

// Publish never dials. When the connection or the channel is gone it starts a
// background reconnect and returns ErrBrokerUnavailable.
func (p *AMQPPublisher) Publish(ctx context.Context, e OrderEvent) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrBrokerUnavailable
	}
	if p.ch == nil || p.ch.IsClosed() || p.conn == nil || p.conn.IsClosed() {
		p.reconnectLocked()
		p.mu.Unlock()
		return ErrBrokerUnavailable
	}
	ch := p.ch
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = ch.PublishWithContext(ctx, p.exchange, e.RoutingKey(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    e.At,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", e.RoutingKey(), err)
	}

	p.log.Debug("order_event_published", "", "published order event",
		slog.String("routing_key", e.RoutingKey()),
		slog.Uint64("order_id", uint64(e.OrderID)))
	return nil
}

// reconnectLocked starts at most one reconnect goroutine. p.mu must be held.
func (p *AMQPPublisher) reconnectLocked() {
	if p.reconnecting {
		return
	}
	p.reconnecting = true
	go func() {
		conn, ch, err := p.dial()

		p.mu.Lock()
		defer p.mu.Unlock()
		p.reconnecting = false
		if err != nil {
			p.log.Warn("rabbitmq_reconnect", "", "reconnect failed",
				slog.String("error", err.Error()))
			return
		}
		if p.closed {
			ch.Close()
			conn.Close()
			return
		}
		if p.ch != nil {
			p.ch.Close()
		}
		if p.conn != nil && !p.conn.IsClosed() {
			p.conn.Close()
		}
		p.conn, p.ch = conn, ch
		p.log.Info("rabbitmq_reconnect", "", "reconnected to rabbitmq")
	}()
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn.Close()
	}
	return nil
}
