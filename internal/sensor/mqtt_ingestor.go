package sensor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vrfurtado/climacore/internal/infrastructure/logging"
	"github.com/vrfurtado/climacore/internal/infrastructure/mqtt"
)

// ingestTimeout bounds the storage write for a single broker message.
const ingestTimeout = 10 * time.Second

// brokerClient is the subset of the MQTT client the ingestor needs.
type brokerClient interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Unsubscribe(topic string) error
}

// MQTTIngestor feeds readings published on the broker through the same
// ingestion pipeline as the HTTP endpoint, so persist-before-publish
// holds regardless of how a reading arrives.
type MQTTIngestor struct {
	pipeline *Pipeline
	client   brokerClient
	qos      byte
	log      *logging.Logger
}

// NewMQTTIngestor creates an ingestor bound to the given pipeline.
func NewMQTTIngestor(pipeline *Pipeline, client brokerClient, qos byte, log *logging.Logger) *MQTTIngestor {
	if log == nil {
		log = logging.Default()
	}
	return &MQTTIngestor{
		pipeline: pipeline,
		client:   client,
		qos:      qos,
		log:      log,
	}
}

// Start subscribes to the wildcard reading topic.
func (i *MQTTIngestor) Start() error {
	topic := mqtt.Topics{}.AllSensorReadings()
	if err := i.client.Subscribe(topic, i.qos, i.handleMessage); err != nil {
		return fmt.Errorf("subscribing to %s: %w", topic, err)
	}
	i.log.Info("MQTT ingestion started", "topic", topic)
	return nil
}

// Stop removes the reading subscription.
func (i *MQTTIngestor) Stop() error {
	return i.client.Unsubscribe(mqtt.Topics{}.AllSensorReadings())
}

// handleMessage parses one broker message and ingests it. The sensor ID
// embedded in the topic is authoritative; a sensor_id in the payload is
// accepted only when it agrees.
func (i *MQTTIngestor) handleMessage(topic string, payload []byte) error {
	sensorID, err := mqtt.ParseSensorID(topic)
	if err != nil {
		return err
	}

	var in ReadingInput
	if err := json.Unmarshal(payload, &in); err != nil {
		return fmt.Errorf("decoding reading from %s: %w", topic, err)
	}

	if in.SensorID != nil && *in.SensorID != sensorID {
		return fmt.Errorf("sensor_id %d in payload contradicts topic %s", *in.SensorID, topic)
	}
	in.SensorID = &sensorID

	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	if _, err := i.pipeline.Ingest(ctx, &in); err != nil {
		return fmt.Errorf("ingesting reading from %s: %w", topic, err)
	}
	return nil
}
