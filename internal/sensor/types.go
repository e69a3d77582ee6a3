package sensor

import (
	"errors"
	"time"
)

// Event names pushed to real-time subscribers. The wire names are part of
// the public contract consumed by dashboard clients.
const (
	// EventReading carries a full persisted reading after ingestion.
	EventReading = "sensorDataUpdate"

	// EventActuatorStatus carries {sensor_id, estado} after an actuator change.
	EventActuatorStatus = "arStatusUpdate"
)

// Reading is one timestamped measurement record from a sensor.
// JSON field names match the dados_sensores columns consumed by existing
// dashboard clients, so they stay in Portuguese.
type Reading struct {
	ID          int64     `json:"id"`
	SensorID    int64     `json:"sensor_id"`
	Temperatura float64   `json:"temperatura"`
	Umidade     float64   `json:"umidade"`
	Ocupacao    int       `json:"ocupacao"`
	Iluminacao  float64   `json:"iluminacao"`
	ControleLuz int       `json:"controle_luz"`
	Timestamp   time.Time `json:"timestamp"`
}

// ReadingInput is the payload accepted by the ingestion endpoint and the
// MQTT subscriber. Pointer fields distinguish absent from zero: a reading
// of 0.0 degrees is valid, a missing temperature is not.
type ReadingInput struct {
	SensorID    *int64   `json:"sensor_id"`
	Temperatura *float64 `json:"temperatura"`
	Umidade     *float64 `json:"umidade"`
	Ocupacao    *int     `json:"ocupacao"`
	Iluminacao  *float64 `json:"iluminacao"`
}

// Validate checks that all required fields are present.
func (in *ReadingInput) Validate() error {
	switch {
	case in.SensorID == nil:
		return errors.New("sensor_id is required")
	case in.Temperatura == nil:
		return errors.New("temperatura is required")
	case in.Umidade == nil:
		return errors.New("umidade is required")
	case in.Ocupacao == nil:
		return errors.New("ocupacao is required")
	case in.Iluminacao == nil:
		return errors.New("iluminacao is required")
	}
	return nil
}

// ActuatorStatus is the payload broadcast after an actuator-state change.
type ActuatorStatus struct {
	SensorID int64 `json:"sensor_id"`
	Estado   int   `json:"estado"`
}

// Sentinel errors for sensor operations.
var (
	ErrInvalidReading = errors.New("invalid reading payload")
	ErrInvalidState   = errors.New("actuator state must be 0 or 1")
)
