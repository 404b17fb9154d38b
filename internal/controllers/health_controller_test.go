package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zhiyu/internal/models"
	"zhiyu/internal/services"
)

type mockAdmin struct {
	stats services.DashboardStats
	err   error
}

func (m *mockAdmin) Accounts(_ context.Context) ([]models.Account, error) { return nil, nil }
func (m *mockAdmin) SetAccountStatus(_ context.Context, _ string, _ models.AccountStatus) (models.Account, bool, error) {
	return models.Account{}, false, nil
}
func (m *mockAdmin) Broadcast(_ context.Context, _, _ string, _ models.MessageSeverity) (models.SystemMessage, error) {
	return models.SystemMessage{}, nil
}
func (m *mockAdmin) Announcements(_ context.Context) ([]models.SystemMessage, error) {
	return nil, nil
}
func (m *mockAdmin) Dashboard(_ context.Context) (services.DashboardStats, error) {
	return m.stats, m.err
}

func TestHealth_ReturnsStats(t *testing.T) {
	hc := NewHealthController(&mockAdmin{stats: services.DashboardStats{Accounts: 2, Records: 7, Messages: 1}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Accounts)
	assert.Equal(t, 7, resp.Records)
	assert.Equal(t, 1, resp.Messages)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 0.0)
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	hc := NewHealthController(&mockAdmin{})

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHealth_StoreFailure(t *testing.T) {
	hc := NewHealthController(&mockAdmin{err: errors.New("substrate unavailable")})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h0m5s", formatDuration(5*time.Second))
	assert.Equal(t, "1h1m1s", formatDuration(time.Hour+time.Minute+time.Second))
	assert.Equal(t, "25h0m0s", formatDuration(25*time.Hour))
}
