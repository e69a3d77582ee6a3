package sensor

import (
	"context"
	"fmt"

	"github.com/vrfurtado/climacore/internal/infrastructure/logging"
)

// Broadcaster pushes events to all live real-time subscribers.
// Delivery is best-effort: implementations must never block the caller
// indefinitely and must swallow per-subscriber failures.
type Broadcaster interface {
	Publish(event string, payload any)
}

// Mirror receives a copy of every persisted reading and actuator change
// for telemetry storage. Implementations write asynchronously; failures
// never reach the pipeline.
type Mirror interface {
	WriteReading(reading *Reading)
	WriteActuatorChange(sensorID int64, estado int)
}

// Pipeline is the write-then-broadcast path for readings and actuator
// changes. Every mutation persists first, then publishes: a subscriber
// that sees an event can always query the matching row back.
type Pipeline struct {
	repo        Repository
	broadcaster Broadcaster
	mirror      Mirror
	log         *logging.Logger
}

// NewPipeline creates the ingestion pipeline. broadcaster and mirror may be
// nil, in which case the corresponding step is skipped.
func NewPipeline(repo Repository, broadcaster Broadcaster, mirror Mirror, log *logging.Logger) *Pipeline {
	if log == nil {
		log = logging.Default()
	}
	return &Pipeline{
		repo:        repo,
		broadcaster: broadcaster,
		mirror:      mirror,
		log:         log,
	}
}

// Ingest validates and persists a reading, then broadcasts the persisted
// row. The durable write is the only guarantee given to the caller; a
// failed broadcast is logged and never surfaces as an ingestion error.
func (p *Pipeline) Ingest(ctx context.Context, in *ReadingInput) (*Reading, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidReading, err)
	}

	reading, err := p.repo.Insert(ctx, in)
	if err != nil {
		return nil, err
	}

	p.publish(EventReading, reading)

	if p.mirror != nil {
		p.mirror.WriteReading(reading)
	}

	p.log.Debug("reading ingested",
		"sensor_id", reading.SensorID,
		"reading_id", reading.ID,
	)

	return reading, nil
}

// SetActuatorState persists a new actuator state for every historical row
// of the sensor, then broadcasts the change. Zero rows affected is not an
// error; the update is still acknowledged and announced.
func (p *Pipeline) SetActuatorState(ctx context.Context, sensorID int64, state int) (int64, error) {
	if state != 0 && state != 1 {
		return 0, ErrInvalidState
	}

	affected, err := p.repo.SetActuatorState(ctx, sensorID, state)
	if err != nil {
		return 0, err
	}

	p.publish(EventActuatorStatus, ActuatorStatus{SensorID: sensorID, Estado: state})

	if p.mirror != nil {
		p.mirror.WriteActuatorChange(sensorID, state)
	}

	p.log.Debug("actuator state updated",
		"sensor_id", sensorID,
		"estado", state,
		"rows_affected", affected,
	)

	return affected, nil
}

// List returns all persisted readings in insertion order.
func (p *Pipeline) List(ctx context.Context) ([]Reading, error) {
	return p.repo.List(ctx)
}

// ClearAll deletes every reading. No event is broadcast.
func (p *Pipeline) ClearAll(ctx context.Context) error {
	if err := p.repo.DeleteAll(ctx); err != nil {
		return err
	}
	p.log.Info("all readings cleared")
	return nil
}

// publish fans out an event, isolating the write path from broadcast
// panics or failures.
func (p *Pipeline) publish(event string, payload any) {
	if p.broadcaster == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("broadcast panic recovered", "event", event, "panic", r)
		}
	}()
	p.broadcaster.Publish(event, payload)
}
