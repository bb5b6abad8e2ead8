package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinfold/service/internal/response"
)

func postJSON(t *testing.T, h http.HandlerFunc, target string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRegisterHandler(t *testing.T) {
	h := NewHandler(newTestService())

	rec := postJSON(t, h.Register, "/auth/register", registerRequest{
		Name: "Ada", Email: "ada@example.com", Gender: "Female", Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// The credential hash must never appear in the response.
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "hunter22")

	rec = postJSON(t, h.Register, "/auth/register", registerRequest{
		Name: "Imposter", Email: "ada@example.com", Gender: "Male", Password: "other",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "email already registered", env.Error)
}

func TestRegisterHandlerValidation(t *testing.T) {
	h := NewHandler(newTestService())

	tests := []struct {
		name string
		req  registerRequest
	}{
		{"missing name", registerRequest{Email: "a@example.com", Gender: "Male", Password: "x"}},
		{"bad email", registerRequest{Name: "A", Email: "not-an-email", Gender: "Male", Password: "x"}},
		{"bad gender", registerRequest{Name: "A", Email: "a@example.com", Gender: "Robot", Password: "x"}},
		{"missing password", registerRequest{Name: "A", Email: "a@example.com", Gender: "Male"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Register, "/auth/register", tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLoginHandler(t *testing.T) {
	svc := newTestService()
	h := NewHandler(svc)

	rec := postJSON(t, h.Register, "/auth/register", registerRequest{
		Name: "Ada", Email: "ada@example.com", Gender: "Female", Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Login, "/auth/login", loginRequest{Email: "ada@example.com", Password: "hunter22"})
	require.Equal(t, http.StatusOK, rec.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	data := env.Data.(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	rec = postJSON(t, h.Login, "/auth/login", loginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
