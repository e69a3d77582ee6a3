package api

import (
	"net/http"
	"testing"
)

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/register", "", map[string]string{
		"username": "alice",
		"password": "pw1234",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body = %s", rec.Code, rec.Body.String())
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	first := ts.do(t, http.MethodPost, "/register", "", map[string]string{
		"username": "alice", "password": "pw1234",
	})
	if first.Code != http.StatusCreated {
		t.Fatalf("first register: status = %d", first.Code)
	}

	second := ts.do(t, http.MethodPost, "/register", "", map[string]string{
		"username": "alice", "password": "other-pw",
	})
	if second.Code != http.StatusBadRequest {
		t.Errorf("duplicate register: status = %d, want 400", second.Code)
	}
}

func TestRegister_Validation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"empty username", map[string]string{"username": "", "password": "pw1234"}},
		{"bad username", map[string]string{"username": "has space", "password": "pw1234"}},
		{"short password", map[string]string{"username": "bob", "password": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/register", "", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	token := ts.login(t, "alice", "pw1234")
	if token == "" {
		t.Fatal("expected a token")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t, "alice", "pw1234")

	wrongPassword := ts.do(t, http.MethodPost, "/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	if wrongPassword.Code != http.StatusBadRequest {
		t.Errorf("wrong password: status = %d, want 400", wrongPassword.Code)
	}

	unknownUser := ts.do(t, http.MethodPost, "/login", "", map[string]string{
		"username": "nobody", "password": "pw1234",
	})
	if unknownUser.Code != http.StatusBadRequest {
		t.Errorf("unknown user: status = %d, want 400", unknownUser.Code)
	}

	// Both failures must be indistinguishable to prevent username probing.
	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Error("wrong-password and unknown-user responses differ")
	}
}

func TestLogin_InvalidBody(t *testing.T) {
	ts := newTestServer(t)

	req := ts.do(t, http.MethodPost, "/login", "", nil)
	if req.Code != http.StatusBadRequest {
		t.Errorf("empty body: status = %d, want 400", req.Code)
	}
}
