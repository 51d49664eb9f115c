package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"

	"go.uber.org/zap"
)

// EventMemberRegistered is the event name carried in published payloads.
const EventMemberRegistered = "member.registered"

// Notifier is told about committed registrations.
type Notifier interface {
	MemberRegistered(ctx context.Context, m domain.Member) error
}

// NopNotifier drops events.
type NopNotifier struct{}

func (NopNotifier) MemberRegistered(context.Context, domain.Member) error { return nil }

// Publisher is satisfied by common/mqtt.Client.
type Publisher interface {
	Publish(topic string, retained bool, payload []byte) error
}

// RegisteredEvent is the JSON payload published per registration.
// The phone number is left out on purpose.
type RegisteredEvent struct {
	Event        string `json:"event"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Neighborhood string `json:"neighborhood"`
	Committee    string `json:"committee,omitempty"`
	RegisteredAt string `json:"registered_at"`
	PublishedAt  int64  `json:"published_at"`
}

// MQTTNotifier publishes registration events on a topic.
type MQTTNotifier struct {
	pub    Publisher
	topic  string
	logger *zap.Logger
}

func NewMQTTNotifier(pub Publisher, topic string, logger *zap.Logger) *MQTTNotifier {
	return &MQTTNotifier{pub: pub, topic: topic, logger: logger}
}

func (n *MQTTNotifier) MemberRegistered(_ context.Context, m domain.Member) error {
	payload, err := json.Marshal(RegisteredEvent{
		Event:        EventMemberRegistered,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Neighborhood: m.Neighborhood,
		Committee:    m.Committee,
		RegisteredAt: m.RegisteredAt,
		PublishedAt:  time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := n.pub.Publish(n.topic, false, payload); err != nil {
		return err
	}
	n.logger.Debug("Registration event published", zap.String("topic", n.topic))
	return nil
}
