package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/vrfurtado/climacore/internal/sensor"
)

func sampleReadingBody() map[string]any {
	return map[string]any{
		"sensor_id":   1,
		"temperatura": 22.5,
		"umidade":     40,
		"ocupacao":    1,
		"iluminacao":  300,
	}
}

func TestGateEnforcement(t *testing.T) {
	ts := newTestServer(t)
	valid := ts.login(t, "gatekeeper", "pw1234")

	protected := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/dados-sensores", nil},
		{http.MethodPut, "/controle-ar/1", map[string]int{"estado": 1}},
		{http.MethodDelete, "/limpar-dados", nil},
	}

	for _, ep := range protected {
		t.Run(ep.method+" "+ep.path, func(t *testing.T) {
			noToken := ts.do(t, ep.method, ep.path, "", ep.body)
			if noToken.Code != http.StatusUnauthorized {
				t.Errorf("no token: status = %d, want 401", noToken.Code)
			}

			badToken := ts.do(t, ep.method, ep.path, "not.a.token", ep.body)
			if badToken.Code != http.StatusForbidden {
				t.Errorf("malformed token: status = %d, want 403", badToken.Code)
			}

			withToken := ts.do(t, ep.method, ep.path, valid, ep.body)
			if withToken.Code != http.StatusOK {
				t.Errorf("valid token: status = %d, want 200; body = %s", withToken.Code, withToken.Body.String())
			}
		})
	}
}

func TestIngestReading(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/dados-sensores", "", sampleReadingBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}

	var reading sensor.Reading
	if err := json.Unmarshal(rec.Body.Bytes(), &reading); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if reading.ID == 0 {
		t.Error("response missing store-assigned id")
	}
	if reading.Timestamp.IsZero() {
		t.Error("response missing store-assigned timestamp")
	}
}

func TestIngestReading_MissingFields(t *testing.T) {
	ts := newTestServer(t)

	body := sampleReadingBody()
	delete(body, "temperatura")

	rec := ts.do(t, http.MethodPost, "/dados-sensores", "", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestListReadings(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "reader", "pw1234")

	empty := ts.do(t, http.MethodGet, "/dados-sensores", token, nil)
	if empty.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", empty.Code)
	}
	if body := empty.Body.String(); body != "[]\n" {
		t.Errorf("empty list body = %q, want []", body)
	}

	ts.do(t, http.MethodPost, "/dados-sensores", "", sampleReadingBody())

	rec := ts.do(t, http.MethodGet, "/dados-sensores", token, nil)
	var readings []sensor.Reading
	if err := json.Unmarshal(rec.Body.Bytes(), &readings); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(readings) != 1 {
		t.Errorf("len(readings) = %d, want 1", len(readings))
	}
}

func TestSetActuator(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "operator", "pw1234")

	ts.do(t, http.MethodPost, "/dados-sensores", "", sampleReadingBody())

	rec := ts.do(t, http.MethodPut, "/controle-ar/1", token, map[string]int{"estado": 1})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}

	list := ts.do(t, http.MethodGet, "/dados-sensores", token, nil)
	var readings []sensor.Reading
	if err := json.Unmarshal(list.Body.Bytes(), &readings); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if readings[0].ControleLuz != 1 {
		t.Errorf("ControleLuz = %d, want 1", readings[0].ControleLuz)
	}
}

func TestSetActuator_Validation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "operator", "pw1234")

	badState := ts.do(t, http.MethodPut, "/controle-ar/1", token, map[string]int{"estado": 2})
	if badState.Code != http.StatusBadRequest {
		t.Errorf("estado 2: status = %d, want 400", badState.Code)
	}

	missingState := ts.do(t, http.MethodPut, "/controle-ar/1", token, map[string]string{})
	if missingState.Code != http.StatusBadRequest {
		t.Errorf("missing estado: status = %d, want 400", missingState.Code)
	}

	badID := ts.do(t, http.MethodPut, "/controle-ar/abc", token, map[string]int{"estado": 1})
	if badID.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id: status = %d, want 400", badID.Code)
	}
}

func TestClearReadings(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "cleaner", "pw1234")

	ts.do(t, http.MethodPost, "/dados-sensores", "", sampleReadingBody())

	rec := ts.do(t, http.MethodDelete, "/limpar-dados", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	list := ts.do(t, http.MethodGet, "/dados-sensores", token, nil)
	var readings []sensor.Reading
	if err := json.Unmarshal(list.Body.Bytes(), &readings); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(readings) != 0 {
		t.Errorf("len(readings) = %d, want 0 after clear", len(readings))
	}
}

// TestEndToEndScenario walks the full account/ingest/control/clear flow.
func TestEndToEndScenario(t *testing.T) {
	ts := newTestServer(t)

	// Register alice, reject the duplicate.
	if rec := ts.do(t, http.MethodPost, "/register", "", map[string]string{"username": "alice", "password": "pw1234"}); rec.Code != http.StatusCreated {
		t.Fatalf("register: status = %d", rec.Code)
	}
	if rec := ts.do(t, http.MethodPost, "/register", "", map[string]string{"username": "alice", "password": "pw5678"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: status = %d, want 400", rec.Code)
	}

	// Login.
	login := ts.do(t, http.MethodPost, "/login", "", map[string]string{"username": "alice", "password": "pw1234"})
	if login.Code != http.StatusOK {
		t.Fatalf("login: status = %d", login.Code)
	}
	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(login.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("decoding login: %v", err)
	}
	token := loginResp.Token

	// Ingest a reading and find it via the query gate.
	if rec := ts.do(t, http.MethodPost, "/dados-sensores", "", sampleReadingBody()); rec.Code != http.StatusOK {
		t.Fatalf("ingest: status = %d", rec.Code)
	}
	list := ts.do(t, http.MethodGet, "/dados-sensores", token, nil)
	var readings []sensor.Reading
	if err := json.Unmarshal(list.Body.Bytes(), &readings); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(readings) != 1 || readings[0].SensorID != 1 {
		t.Fatalf("readings = %+v, want one row for sensor 1", readings)
	}

	// Flip the actuator and observe the stored state.
	if rec := ts.do(t, http.MethodPut, "/controle-ar/1", token, map[string]int{"estado": 1}); rec.Code != http.StatusOK {
		t.Fatalf("actuator: status = %d", rec.Code)
	}
	list = ts.do(t, http.MethodGet, "/dados-sensores", token, nil)
	if err := json.Unmarshal(list.Body.Bytes(), &readings); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if readings[0].ControleLuz != 1 {
		t.Fatalf("ControleLuz = %d, want 1", readings[0].ControleLuz)
	}

	// Clear and verify the store is empty.
	if rec := ts.do(t, http.MethodDelete, "/limpar-dados", token, nil); rec.Code != http.StatusOK {
		t.Fatalf("clear: status = %d", rec.Code)
	}
	list = ts.do(t, http.MethodGet, "/dados-sensores", token, nil)
	if err := json.Unmarshal(list.Body.Bytes(), &readings); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(readings) != 0 {
		t.Fatalf("readings = %+v, want empty after clear", readings)
	}
}
