package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vrfurtado/climacore/internal/sensor"
)

// handleIngestReading accepts a sensor reading and runs it through the
// ingestion pipeline. Persist-before-publish: by the time the 200 is
// written, the row is durable and subscribers have been notified.
//
// POST /dados-sensores {sensor_id, temperatura, umidade, ocupacao, iluminacao} -> 200
func (s *Server) handleIngestReading(w http.ResponseWriter, r *http.Request) {
	var in sensor.ReadingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	reading, err := s.pipeline.Ingest(r.Context(), &in)
	if err != nil {
		if errors.Is(err, sensor.ErrInvalidReading) {
			writeBadRequest(w, err.Error())
			return
		}
		s.logger.Error("reading ingestion failed", "error", err)
		writeInternalError(w, "failed to store reading")
		return
	}

	writeJSON(w, http.StatusOK, reading)
}

// handleListReadings returns all readings in insertion order.
//
// GET /dados-sensores -> 200 [Reading]
func (s *Server) handleListReadings(w http.ResponseWriter, r *http.Request) {
	readings, err := s.pipeline.List(r.Context())
	if err != nil {
		s.logger.Error("listing readings failed", "error", err)
		writeInternalError(w, "failed to list readings")
		return
	}

	writeJSON(w, http.StatusOK, readings)
}

// actuatorRequest is the body for the actuator-control endpoint.
// Pointer so a missing estado is distinguishable from estado 0.
type actuatorRequest struct {
	Estado *int `json:"estado"`
}

// handleSetActuator updates the actuator state for a sensor and announces
// the change. The update covers every historical row for the sensor; a
// sensor with no rows yet still gets a 200 and a broadcast.
//
// PUT /controle-ar/{sensor_id} {estado} -> 200
func (s *Server) handleSetActuator(w http.ResponseWriter, r *http.Request) {
	sensorID, err := strconv.ParseInt(chi.URLParam(r, "sensor_id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "sensor_id must be an integer")
		return
	}

	var req actuatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Estado == nil {
		writeBadRequest(w, "estado is required")
		return
	}

	affected, err := s.pipeline.SetActuatorState(r.Context(), sensorID, *req.Estado)
	if err != nil {
		if errors.Is(err, sensor.ErrInvalidState) {
			writeBadRequest(w, "estado must be 0 or 1")
			return
		}
		s.logger.Error("actuator update failed", "sensor_id", sensorID, "error", err)
		writeInternalError(w, "failed to update actuator state")
		return
	}

	claims := claimsFrom(r.Context())
	s.logger.Info("actuator state changed",
		"sensor_id", sensorID,
		"estado", *req.Estado,
		"rows_affected", affected,
		"username", claims.Username,
	)

	writeJSON(w, http.StatusOK, map[string]any{
		"sensor_id":     sensorID,
		"estado":        *req.Estado,
		"rows_affected": affected,
	})
}

// handleClearReadings deletes every stored reading. Accounts are untouched
// and no event is broadcast.
//
// DELETE /limpar-dados -> 200
func (s *Server) handleClearReadings(w http.ResponseWriter, r *http.Request) {
	if err := s.pipeline.ClearAll(r.Context()); err != nil {
		s.logger.Error("clearing readings failed", "error", err)
		writeInternalError(w, "failed to clear readings")
		return
	}

	claims := claimsFrom(r.Context())
	s.logger.Info("readings cleared", "username", claims.Username)

	writeJSON(w, http.StatusOK, map[string]string{"message": "all readings cleared"})
}
