package observer

import (
	"time"

	"github.com/nats-io/nats.go"
)

// NATSPublisher publishes state changes on "<prefix>.<topic>".
type NATSPublisher struct {
	Conn   *nats.Conn
	prefix string
}

// NewNATSPublisher connects to the NATS server.
func NewNATSPublisher(url string, name string, prefix string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{Conn: conn, prefix: prefix}, nil
}

// Publish sends data under the prefixed subject.
func (p *NATSPublisher) Publish(subject string, data []byte) error {
	return p.Conn.Publish(p.Subject(subject), data)
}

// Subject returns the full subject of a topic.
func (p *NATSPublisher) Subject(topic string) string {
	if p.prefix == "" {
		return topic
	}
	return p.prefix + "." + topic
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if p.Conn == nil {
		return
	}
	_ = p.Conn.Drain()
}

// NopPublisher drops every message.
type NopPublisher struct{}

func (NopPublisher) Publish(string, []byte) error { return nil }
