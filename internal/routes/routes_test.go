package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/barberflow/barberflow-server/internal/config"
	"github.com/barberflow/barberflow-server/internal/domain/booking"
	"github.com/barberflow/barberflow-server/internal/infra/localstore"
	"github.com/barberflow/barberflow-server/internal/insight"
	"github.com/barberflow/barberflow-server/internal/store"
)

// Sobe a API completa no modo degradado (sem Postgres, sem Redis): o
// repositório remoto é nil e toda escrita cai no cache local em disco.
func newTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AdminPIN:    "1234",
		JWTSecret:   "test-secret",
		GeminiModel: "gemini-1.5-flash",
	}

	loc := time.UTC
	local := localstore.New(filepath.Join(t.TempDir(), "appointments.json"))
	st := store.New(nil, local, loc)
	provider := insight.NewProvider("", cfg.GeminiModel, nil, loc)

	r := gin.New()
	RegisterRoutes(r, cfg, nil, st, provider, loc)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func barberToken(t *testing.T, r *gin.Engine) string {
	t.Helper()

	w := doJSON(r, http.MethodPost, "/api/auth/session", gin.H{"pin": "1234"}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func today() string {
	return time.Now().In(time.UTC).Format(booking.DateLayout)
}

func bookingBody(slot string) gin.H {
	return gin.H{
		"client_name":  "Ana Silva",
		"client_phone": "+55 11 99999-9999",
		"service":      "haircut",
		"date":         today(),
		"time":         slot,
	}
}

func TestListServices(t *testing.T) {
	r := newTestAPI(t)

	w := doJSON(r, http.MethodGet, "/api/public/services", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data  []booking.Service `json:"data"`
		Total int               `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, booking.ServiceHaircut, resp.Data[0].Code)
}

func TestAvailability(t *testing.T) {
	r := newTestAPI(t)

	w := doJSON(r, http.MethodGet, "/api/public/availability?date="+today(), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Date  string                     `json:"date"`
		Slots []booking.SlotAvailability `json:"slots"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, today(), resp.Date)
	assert.Len(t, resp.Slots, len(booking.TimeSlots()))

	// fora da janela de agendamento
	w = doJSON(r, http.MethodGet, "/api/public/availability?date=2020-01-01", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_date")
}

func TestCreateAppointment_DegradedMode(t *testing.T) {
	r := newTestAPI(t)

	w := doJSON(r, http.MethodPost, "/api/public/appointments", bookingBody("10:00"), "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Appointment struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"appointment"`
		Source      string `json:"source"`
		Provisional bool   `json:"provisional"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Appointment.ID)
	assert.Equal(t, "pending", resp.Appointment.Status)
	assert.Equal(t, string(booking.SourceLocal), resp.Source)
	assert.True(t, resp.Provisional)

	// o slot recém-ocupado aparece na disponibilidade
	w = doJSON(r, http.MethodGet, "/api/public/availability?date="+today(), nil, "")
	assert.Contains(t, w.Body.String(), `"time":"10:00","booked":true`)
}

func TestCreateAppointment_SlotTaken(t *testing.T) {
	r := newTestAPI(t)

	assert.Equal(t, http.StatusCreated,
		doJSON(r, http.MethodPost, "/api/public/appointments", bookingBody("10:00"), "").Code)

	w := doJSON(r, http.MethodPost, "/api/public/appointments", bookingBody("10:00"), "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateAppointment_Validation(t *testing.T) {
	r := newTestAPI(t)

	tests := []struct {
		name     string
		mutate   func(gin.H)
		wantCode string
	}{
		{"missing field", func(b gin.H) { delete(b, "client_name") }, "invalid_request"},
		{"whitespace name", func(b gin.H) { b["client_name"] = "   " }, "missing_client_name"},
		{"unknown service", func(b gin.H) { b["service"] = "massage" }, "invalid_service"},
		{"date out of window", func(b gin.H) { b["date"] = "2020-01-01" }, "invalid_date"},
		{"off-grid time", func(b gin.H) { b["time"] = "10:30" }, "invalid_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := bookingBody("11:00")
			tt.mutate(body)

			w := doJSON(r, http.MethodPost, "/api/public/appointments", body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
		})
	}
}

func TestBarberPanel_FullFlow(t *testing.T) {
	r := newTestAPI(t)

	// agenda sem token: barrado
	assert.Equal(t, http.StatusUnauthorized,
		doJSON(r, http.MethodGet, "/api/me/appointments", nil, "").Code)

	token := barberToken(t, r)

	w := doJSON(r, http.MethodPost, "/api/public/appointments", bookingBody("14:00"), "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Appointment struct {
			ID string `json:"id"`
		} `json:"appointment"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// lista do dia traz o agendamento enriquecido com o catálogo
	w = doJSON(r, http.MethodGet, "/api/me/appointments?date="+today(), nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.Appointment.ID)
	assert.Contains(t, w.Body.String(), "Corte de Cabelo")

	// concluir
	path := fmt.Sprintf("/api/me/appointments/%s/complete", created.Appointment.ID)
	w = doJSON(r, http.MethodPatch, path, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"completed"`)

	// concluído é terminal: cancelar é rejeitado
	path = fmt.Sprintf("/api/me/appointments/%s/cancel", created.Appointment.ID)
	w = doJSON(r, http.MethodPatch, path, nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_state")

	// id desconhecido
	w = doJSON(r, http.MethodPatch, "/api/me/appointments/missing/complete", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInsight_CannedQuote(t *testing.T) {
	r := newTestAPI(t)
	token := barberToken(t, r)

	assert.Equal(t, http.StatusCreated,
		doJSON(r, http.MethodPost, "/api/public/appointments", bookingBody("09:00"), "").Code)

	w := doJSON(r, http.MethodGet, "/api/me/insight", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Date    string `json:"date"`
		Count   int    `json:"count"`
		Insight string `json:"insight"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, today(), resp.Date)
	assert.Equal(t, 1, resp.Count)
	assert.NotEmpty(t, resp.Insight)
}
