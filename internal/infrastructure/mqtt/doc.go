// Package mqtt provides MQTT broker connectivity for Climacore.
//
// Sensors that cannot speak HTTP publish readings to
// climacore/sensors/{sensor_id}/reading; the service subscribes with a
// wildcard and feeds them through the same ingestion pipeline as the
// HTTP endpoint. The service also announces its own online/offline state
// on climacore/system/status using a retained message plus a Last Will
// for crash detection.
//
// The client wraps eclipse/paho.mqtt.golang with auto-reconnect,
// subscription restoration, and panic-safe message handlers.
package mqtt
