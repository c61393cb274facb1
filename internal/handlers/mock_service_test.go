package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"komfovent_gateway/internal/komfovent"
	"komfovent_gateway/internal/models"
	"komfovent_gateway/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockControl struct {
	modeErr   error
	tempErr   error
	lastMode  string
	lastTemp  float64
	modeCalls int
	tempCalls int
}

func (m *mockControl) SetMode(ctx context.Context, mode string) error {
	m.modeCalls++
	m.lastMode = mode
	return m.modeErr
}
func (m *mockControl) SetTemperature(ctx context.Context, celsius float64) error {
	m.tempCalls++
	m.lastTemp = celsius
	return m.tempErr
}

// mockMonitoring returns a fixed snapshot. With advance set every call
// reports a newer read time.
type mockMonitoring struct {
	mu      sync.Mutex
	snap    models.Snapshot
	diag    service.Diagnostics
	err     error
	advance bool
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.advance {
		m.snap.ReadAt = m.snap.ReadAt.Add(time.Second)
	}
	return m.snap, m.err
}
func (m *mockMonitoring) setSnapshot(s models.Snapshot) {
	m.mu.Lock()
	m.snap = s
	m.mu.Unlock()
}
func (m *mockMonitoring) Diagnostics(ctx context.Context) (service.Diagnostics, error) {
	return m.diag, m.err
}

type mockSchedule struct {
	view     service.ScheduleView
	getErr   error
	setErr   error
	lastSet  service.ScheduleUpdate
	setCalls int
}

func (m *mockSchedule) GetSchedule(ctx context.Context) (service.ScheduleView, error) {
	return m.view, m.getErr
}
func (m *mockSchedule) SetSchedule(ctx context.Context, u service.ScheduleUpdate) error {
	m.setCalls++
	m.lastSet = u
	return m.setErr
}

type mockSettings struct {
	list      []komfovent.Setting
	updateErr error
	lastKey   string
	lastValue service.SettingValue
}

func (m *mockSettings) ListSettings() []komfovent.Setting { return m.list }
func (m *mockSettings) UpdateSetting(ctx context.Context, key string, v service.SettingValue) error {
	m.lastKey, m.lastValue = key, v
	return m.updateErr
}

type mockDiscovery struct {
	found []komfovent.DiscoveredDevice
	err   error
}

func (m *mockDiscovery) Discover(ctx context.Context) ([]komfovent.DiscoveredDevice, error) {
	return m.found, m.err
}

type mockEventLog struct {
	resp      []models.DeviceEvent
	err       error
	lastFrom  time.Time
	lastTo    time.Time
	lastType  string
	lastLimit int
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.DeviceEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	m.lastLimit = f.Limit
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// do sends one request with an optional JSON body and bearer token.
func do(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
