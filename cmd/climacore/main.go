// Climacore - environmental monitoring backend
//
// Climacore accepts sensor readings over HTTP and MQTT, persists them to
// SQLite, fans them out to WebSocket subscribers in real time, and lets
// authenticated clients query history and toggle per-sensor actuators.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/vrfurtado/climacore/migrations"

	"github.com/vrfurtado/climacore/internal/api"
	"github.com/vrfurtado/climacore/internal/auth"
	"github.com/vrfurtado/climacore/internal/infrastructure/config"
	"github.com/vrfurtado/climacore/internal/infrastructure/database"
	"github.com/vrfurtado/climacore/internal/infrastructure/influxdb"
	"github.com/vrfurtado/climacore/internal/infrastructure/logging"
	"github.com/vrfurtado/climacore/internal/infrastructure/mqtt"
	"github.com/vrfurtado/climacore/internal/sensor"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the application logic, separated from main for testability.
func run(ctx context.Context) error { //nolint:gocognit // Linear startup sequence
	log := logging.Default()
	log.Info("starting Climacore",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)

	// Open database and apply migrations
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Repositories
	users := auth.NewUserRepository(db.DB)
	readings := sensor.NewRepository(db.DB)

	// Telemetry mirror (optional)
	var mirror sensor.Mirror
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			influxClient.Close()
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		mirror = &influxMirror{client: influxClient}
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	// WebSocket hub; the hub is created before the server so the pipeline
	// can broadcast through it.
	hub := api.NewHub(cfg.WebSocket, log)
	broadcaster := sensor.Broadcaster(hub)

	// MQTT (optional). When connected, actuator announcements are relayed
	// to the broker on top of the WebSocket fan-out.
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT, log)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
		broadcaster = sensor.NewBrokerRelay(hub, mqttClient, byte(cfg.MQTT.QoS), log)
	} else {
		log.Info("MQTT disabled, readings arrive via HTTP only")
	}

	pipeline := sensor.NewPipeline(readings, broadcaster, mirror, log)

	// MQTT ingestion feeds broker readings through the same pipeline.
	if mqttClient != nil {
		ingestor := sensor.NewMQTTIngestor(pipeline, mqttClient, byte(cfg.MQTT.QoS), log)
		if startErr := ingestor.Start(); startErr != nil {
			return fmt.Errorf("starting MQTT ingestion: %w", startErr)
		}
		defer func() {
			if stopErr := ingestor.Stop(); stopErr != nil {
				log.Warn("error stopping MQTT ingestion", "error", stopErr)
			}
		}()
	}

	// API server
	server, err := api.New(api.Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Security: cfg.Security,
		Logger:   log,
		Pipeline: pipeline,
		Users:    users,
		DB:       db,
		Hub:      hub,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("Climacore stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses the CLIMACORE_CONFIG environment variable if set, otherwise the default.
func getConfigPath() string {
	if path := os.Getenv("CLIMACORE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// influxMirror adapts the InfluxDB client to the pipeline's Mirror interface.
type influxMirror struct {
	client *influxdb.Client
}

// WriteReading implements sensor.Mirror.
func (m *influxMirror) WriteReading(r *sensor.Reading) {
	m.client.WriteSensorReading(r.SensorID, r.Temperatura, r.Umidade, r.Iluminacao,
		r.Ocupacao, r.ControleLuz, r.Timestamp)
}

// WriteActuatorChange implements sensor.Mirror.
func (m *influxMirror) WriteActuatorChange(sensorID int64, estado int) {
	m.client.WriteActuatorChange(sensorID, estado)
}
