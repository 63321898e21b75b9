// Package events publishes session lifecycle events for downstream
// consumers (notifications, audit). Publication is fire-and-forget and
// never blocks or fails a lifecycle operation.
package events

import (
	"encoding/json"
	"time"

	natsgo "github.com/nats-io/nats.go"
)

const (
	SubjectSessionCreated   = "session.created"
	SubjectSessionDestroyed = "session.destroyed"
)

type Publisher struct {
	nc *natsgo.Conn
}

// NewPublisher wraps a NATS connection. A nil connection yields a no-op
// publisher so callers never have to branch on whether events are wired.
func NewPublisher(nc *natsgo.Conn) *Publisher {
	return &Publisher{nc: nc}
}

func (p *Publisher) Publish(subject string, data map[string]interface{}) {
	if p == nil || p.nc == nil {
		return
	}
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	_ = p.nc.Publish("session.events", payload)
	_ = p.nc.Publish(subject, payload)
}
