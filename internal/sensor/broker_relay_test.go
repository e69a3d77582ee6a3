package sensor

import (
	"encoding/json"
	"errors"
	"testing"
)

// fakePublisher records broker publishes.
type fakePublisher struct {
	topics   []string
	payloads [][]byte
	retained []bool
	err      error
}

func (f *fakePublisher) Publish(topic string, payload []byte, _ byte, retained bool) error {
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, payload)
	f.retained = append(f.retained, retained)
	return f.err
}

func TestBrokerRelay_AnnouncesActuatorChanges(t *testing.T) {
	inner := &recordingBroadcaster{}
	pub := &fakePublisher{}
	relay := NewBrokerRelay(inner, pub, 1, nil)

	relay.Publish(EventActuatorStatus, ActuatorStatus{SensorID: 7, Estado: 1})

	if len(inner.events) != 1 {
		t.Fatalf("inner broadcaster saw %d events, want 1", len(inner.events))
	}
	if len(pub.topics) != 1 {
		t.Fatalf("broker saw %d publishes, want 1", len(pub.topics))
	}
	if pub.topics[0] != "climacore/sensors/7/actuator" {
		t.Errorf("topic = %q, want climacore/sensors/7/actuator", pub.topics[0])
	}
	if !pub.retained[0] {
		t.Error("actuator announcement must be retained")
	}

	var status ActuatorStatus
	if err := json.Unmarshal(pub.payloads[0], &status); err != nil {
		t.Fatalf("decoding announcement: %v", err)
	}
	if status != (ActuatorStatus{SensorID: 7, Estado: 1}) {
		t.Errorf("announcement = %+v", status)
	}
}

func TestBrokerRelay_DoesNotEchoReadings(t *testing.T) {
	inner := &recordingBroadcaster{}
	pub := &fakePublisher{}
	relay := NewBrokerRelay(inner, pub, 1, nil)

	relay.Publish(EventReading, &Reading{ID: 1, SensorID: 7})

	if len(inner.events) != 1 {
		t.Fatalf("inner broadcaster saw %d events, want 1", len(inner.events))
	}
	if len(pub.topics) != 0 {
		t.Errorf("reading was re-published to the broker: %v", pub.topics)
	}
}

func TestBrokerRelay_BrokerFailureIsSwallowed(t *testing.T) {
	inner := &recordingBroadcaster{}
	pub := &fakePublisher{err: errors.New("broker gone")}
	relay := NewBrokerRelay(inner, pub, 1, nil)

	// Must not panic or propagate; the WebSocket fan-out already happened.
	relay.Publish(EventActuatorStatus, ActuatorStatus{SensorID: 2, Estado: 0})

	if len(inner.events) != 1 {
		t.Errorf("inner broadcaster saw %d events, want 1", len(inner.events))
	}
}
