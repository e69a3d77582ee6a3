package sensor

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository defines persistence for sensor readings.
type Repository interface {
	Insert(ctx context.Context, in *ReadingInput) (*Reading, error)
	List(ctx context.Context) ([]Reading, error)
	SetActuatorState(ctx context.Context, sensorID int64, state int) (int64, error)
	DeleteAll(ctx context.Context) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite-backed reading repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Insert persists a validated reading with actuator state defaulted to 0
// and returns the full row including the store-assigned id and timestamp.
func (r *SQLiteRepository) Insert(ctx context.Context, in *ReadingInput) (*Reading, error) {
	now := time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO dados_sensores (sensor_id, temperatura, umidade, ocupacao, iluminacao, controle_luz, timestamp)
		 VALUES (?, ?, ?, ?, ?, 0, ?)`,
		*in.SensorID, *in.Temperatura, *in.Umidade, *in.Ocupacao, *in.Iluminacao,
		now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting reading: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading new row id: %w", err)
	}

	return &Reading{
		ID:          id,
		SensorID:    *in.SensorID,
		Temperatura: *in.Temperatura,
		Umidade:     *in.Umidade,
		Ocupacao:    *in.Ocupacao,
		Iluminacao:  *in.Iluminacao,
		ControleLuz: 0,
		Timestamp:   now,
	}, nil
}

// List returns all readings in insertion order.
func (r *SQLiteRepository) List(ctx context.Context) ([]Reading, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sensor_id, temperatura, umidade, ocupacao, iluminacao, controle_luz, timestamp
		 FROM dados_sensores ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing readings: %w", err)
	}
	defer rows.Close()

	readings := []Reading{}
	for rows.Next() {
		var rd Reading
		var ts string
		if err := rows.Scan(&rd.ID, &rd.SensorID, &rd.Temperatura, &rd.Umidade,
			&rd.Ocupacao, &rd.Iluminacao, &rd.ControleLuz, &ts); err != nil {
			return nil, fmt.Errorf("scanning reading: %w", err)
		}
		rd.Timestamp, _ = time.Parse(time.RFC3339, ts) //nolint:errcheck // format is controlled
		readings = append(readings, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating readings: %w", err)
	}

	return readings, nil
}

// SetActuatorState updates controle_luz on every row for the given sensor
// and returns the number of rows affected. Sensor IDs are not unique across
// readings, so this is deliberately a bulk update over the sensor's history.
func (r *SQLiteRepository) SetActuatorState(ctx context.Context, sensorID int64, state int) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE dados_sensores SET controle_luz = ? WHERE sensor_id = ?",
		state, sensorID,
	)
	if err != nil {
		return 0, fmt.Errorf("updating actuator state: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting affected rows: %w", err)
	}
	return affected, nil
}

// DeleteAll removes every reading row. User accounts are untouched.
func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM dados_sensores"); err != nil {
		return fmt.Errorf("clearing readings: %w", err)
	}
	return nil
}
