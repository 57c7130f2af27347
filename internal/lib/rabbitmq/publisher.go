package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/institute-api/internal/models"
)

// leadRoutingKey ключ маршрутизации события lead.captured.
const leadRoutingKey = "lead.captured"

// PublishMessage публикует сообщение в RabbitMQ в формате JSON.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// LeadPublisher публикует события о лидах в обменник LeadsExchange.
type LeadPublisher struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewLeadPublisher подключается к брокеру и готовит обменник и очереди.
func NewLeadPublisher(url string) (*LeadPublisher, error) {
	const op = "rabbitmq.NewLeadPublisher"

	conn, err := Connect(url, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := SetupChannel(conn, GetLeadQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &LeadPublisher{conn: conn, ch: ch}, nil
}

// PublishLead публикует событие lead.captured.
func (p *LeadPublisher) PublishLead(ctx context.Context, event models.LeadEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return PublishMessage(p.ch, LeadsExchange, leadRoutingKey, event)
}

// Close закрывает канал и соединение.
func (p *LeadPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}
