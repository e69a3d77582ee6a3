package sensor

import (
	"encoding/json"

	"github.com/vrfurtado/climacore/internal/infrastructure/logging"
	"github.com/vrfurtado/climacore/internal/infrastructure/mqtt"
)

// brokerPublisher is the subset of the MQTT client the relay needs.
type brokerPublisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// BrokerRelay is a Broadcaster that forwards actuator announcements to the
// MQTT broker on top of an inner broadcaster (normally the WebSocket hub).
// The announcement is retained so a device that reconnects immediately
// learns its current state. Readings are not re-published: they originate
// on the broker or over HTTP, and echoing them back would feed the
// ingestor its own output.
type BrokerRelay struct {
	inner Broadcaster
	pub   brokerPublisher
	qos   byte
	log   *logging.Logger
}

// NewBrokerRelay wraps inner so actuator events also reach the broker.
func NewBrokerRelay(inner Broadcaster, pub brokerPublisher, qos byte, log *logging.Logger) *BrokerRelay {
	if log == nil {
		log = logging.Default()
	}
	return &BrokerRelay{inner: inner, pub: pub, qos: qos, log: log}
}

// Publish implements Broadcaster. Broker failures are logged and never
// surface: the WebSocket fan-out already happened and the persisted state
// is authoritative.
func (r *BrokerRelay) Publish(event string, payload any) {
	if r.inner != nil {
		r.inner.Publish(event, payload)
	}
	if event != EventActuatorStatus {
		return
	}

	status, ok := payload.(ActuatorStatus)
	if !ok {
		r.log.Warn("actuator event carried unexpected payload", "event", event)
		return
	}

	body, err := json.Marshal(status)
	if err != nil {
		r.log.Error("encoding actuator announcement", "error", err)
		return
	}

	topic := mqtt.Topics{}.ActuatorStatus(status.SensorID)
	if err := r.pub.Publish(topic, body, r.qos, true); err != nil {
		r.log.Warn("actuator announcement not published",
			"topic", topic,
			"error", err,
		)
	}
}
