package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteSensorReading mirrors the numeric fields of one persisted reading
// to the sensor_readings measurement, tagged by sensor ID.
//
// The write is non-blocking; points are batched and flushed according to
// the configured batch size and interval. SQLite remains the system of
// record — a lost point here never affects the ingestion result.
func (c *Client) WriteSensorReading(sensorID int64, temperatura, umidade, iluminacao float64, ocupacao, controleLuz int, ts time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"sensor_readings",
		map[string]string{
			"sensor_id": strconv.FormatInt(sensorID, 10),
		},
		map[string]interface{}{
			"temperatura":  temperatura,
			"umidade":      umidade,
			"iluminacao":   iluminacao,
			"ocupacao":     ocupacao,
			"controle_luz": controleLuz,
		},
		ts,
	)

	c.writeAPI.WritePoint(point)
}

// WriteActuatorChange records an actuator-state transition in the
// actuator_changes measurement for later correlation with readings.
func (c *Client) WriteActuatorChange(sensorID int64, estado int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"actuator_changes",
		map[string]string{
			"sensor_id": strconv.FormatInt(sensorID, 10),
		},
		map[string]interface{}{
			"estado": estado,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// Flush forces any buffered points to be written immediately.
func (c *Client) Flush() {
	c.writeAPI.Flush()
}
