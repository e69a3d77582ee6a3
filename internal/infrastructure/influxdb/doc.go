// Package influxdb mirrors sensor telemetry to InfluxDB.
//
// SQLite is the system of record; this mirror exists so dashboards can
// query reading history with time-series tooling without touching the
// primary store. Writes are batched and asynchronous, and a mirror
// failure never affects ingestion.
//
// The mirror is optional: when influxdb.enabled is false in config.yaml
// the service runs without it.
package influxdb
