package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"freight-backoffice/pkg/mqtt"

	"go.uber.org/zap"
)

const (
	TypeInvoiceCreated = "invoices/created"
	TypeInvoiceDeleted = "invoices/deleted"
)

// Event is a notification about a committed change.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

// Publisher delivers events to interested systems. Delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close()                               {}

// publisherClient is the subset of the MQTT client the publisher needs.
type publisherClient interface {
	Publish(topic string, qos byte, retained bool, payload []byte, timeout time.Duration) error
	Disconnect()
}

// MQTTPublisher sends events as JSON to {prefix}/{event type}.
type MQTTPublisher struct {
	client  publisherClient
	prefix  string
	qos     byte
	timeout time.Duration
}

func NewMQTTPublisher(client *mqtt.Client, prefix string, qos byte) *MQTTPublisher {
	return newMQTTPublisher(client, prefix, qos)
}

func newMQTTPublisher(client publisherClient, prefix string, qos byte) *MQTTPublisher {
	return &MQTTPublisher{
		client:  client,
		prefix:  strings.TrimSuffix(prefix, "/"),
		qos:     qos,
		timeout: 5 * time.Second,
	}
}

func (p *MQTTPublisher) Topic(eventType string) string {
	if p.prefix == "" {
		return eventType
	}
	return p.prefix + "/" + eventType
}

func (p *MQTTPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if err := p.client.Publish(p.Topic(event.Type), p.qos, false, payload, p.timeout); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect()
}

// Connect builds a publisher for the configured broker, or a no-op publisher when
// no broker is set.
func Connect(cfg mqtt.Config, prefix string, qos byte, log *zap.Logger) (Publisher, error) {
	if cfg.Broker == "" {
		return NopPublisher{}, nil
	}

	client := mqtt.NewClient(&cfg, log)
	if err := client.Connect(); err != nil {
		return nil, err
	}
	return NewMQTTPublisher(client, prefix, qos), nil
}
