package sensor

import (
	"context"
	"testing"

	"github.com/vrfurtado/climacore/internal/infrastructure/mqtt"
)

// fakeBroker records subscriptions without a real MQTT connection.
type fakeBroker struct {
	subscribed   []string
	unsubscribed []string
	handler      mqtt.MessageHandler
}

func (b *fakeBroker) Subscribe(topic string, _ byte, handler mqtt.MessageHandler) error {
	b.subscribed = append(b.subscribed, topic)
	b.handler = handler
	return nil
}

func (b *fakeBroker) Unsubscribe(topic string) error {
	b.unsubscribed = append(b.unsubscribed, topic)
	return nil
}

func TestMQTTIngestor_StartSubscribesWildcard(t *testing.T) {
	broker := &fakeBroker{}
	ing := NewMQTTIngestor(NewPipeline(NewRepository(testDB(t)), nil, nil, nil), broker, 1, nil)

	if err := ing.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if len(broker.subscribed) != 1 || broker.subscribed[0] != "climacore/sensors/+/reading" {
		t.Errorf("subscribed = %v", broker.subscribed)
	}

	if err := ing.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if len(broker.unsubscribed) != 1 {
		t.Errorf("unsubscribed = %v", broker.unsubscribed)
	}
}

func TestMQTTIngestor_IngestsBrokerReading(t *testing.T) {
	repo := NewRepository(testDB(t))
	p := NewPipeline(repo, nil, nil, nil)
	broker := &fakeBroker{}
	ing := NewMQTTIngestor(p, broker, 1, nil)

	if err := ing.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	payload := []byte(`{"temperatura":21.0,"umidade":55,"ocupacao":0,"iluminacao":120}`)
	if err := broker.handler("climacore/sensors/9/reading", payload); err != nil {
		t.Fatalf("handler error = %v", err)
	}

	readings, err := p.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("len(readings) = %d, want 1", len(readings))
	}
	if readings[0].SensorID != 9 {
		t.Errorf("SensorID = %d, want 9 (from topic)", readings[0].SensorID)
	}
}

func TestMQTTIngestor_RejectsContradictorySensorID(t *testing.T) {
	broker := &fakeBroker{}
	ing := NewMQTTIngestor(NewPipeline(NewRepository(testDB(t)), nil, nil, nil), broker, 1, nil)
	if err := ing.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	payload := []byte(`{"sensor_id":5,"temperatura":21.0,"umidade":55,"ocupacao":0,"iluminacao":120}`)
	if err := broker.handler("climacore/sensors/9/reading", payload); err == nil {
		t.Error("expected error for sensor_id mismatch")
	}
}

func TestMQTTIngestor_RejectsMalformedPayload(t *testing.T) {
	broker := &fakeBroker{}
	ing := NewMQTTIngestor(NewPipeline(NewRepository(testDB(t)), nil, nil, nil), broker, 1, nil)
	if err := ing.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := broker.handler("climacore/sensors/9/reading", []byte("not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
	if err := broker.handler("climacore/sensors/9/reading", []byte(`{"temperatura":21.0}`)); err == nil {
		t.Error("expected error for missing fields")
	}
}
