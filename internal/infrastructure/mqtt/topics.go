package mqtt

import (
	"fmt"
	"strconv"
	"strings"
)

// Topic layout for the Climacore broker namespace:
//
//	climacore/sensors/{sensor_id}/reading   sensor readings (JSON, same shape as POST /dados-sensores)
//	climacore/sensors/{sensor_id}/actuator  actuator state announcements (retained)
//	climacore/system/status                 service online/offline status (retained, LWT)
const topicPrefix = "climacore"

// Topics builds topic strings for the Climacore namespace.
type Topics struct{}

// SensorReading returns the reading topic for a single sensor.
func (Topics) SensorReading(sensorID int64) string {
	return fmt.Sprintf("%s/sensors/%d/reading", topicPrefix, sensorID)
}

// AllSensorReadings returns the wildcard pattern matching every sensor's
// reading topic.
func (Topics) AllSensorReadings() string {
	return topicPrefix + "/sensors/+/reading"
}

// ActuatorStatus returns the actuator announcement topic for a sensor.
func (Topics) ActuatorStatus(sensorID int64) string {
	return fmt.Sprintf("%s/sensors/%d/actuator", topicPrefix, sensorID)
}

// SystemStatus returns the service status topic used for LWT and
// online/offline announcements.
func (Topics) SystemStatus() string {
	return topicPrefix + "/system/status"
}

// ParseSensorID extracts the sensor ID from a sensor topic such as
// climacore/sensors/42/reading. Returns an error for foreign topics.
func ParseSensorID(topic string) (int64, error) {
	parts := strings.Split(topic, "/")
	if len(parts) < 3 || parts[0] != topicPrefix || parts[1] != "sensors" {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTopic, topic)
	}
	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric sensor id in %s", ErrInvalidTopic, topic)
	}
	return id, nil
}
