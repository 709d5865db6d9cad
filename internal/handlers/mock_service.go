package handlers

import (
	"context"
	"net/http"
	"time"

	"grain_dryer/internal/logger"
	"grain_dryer/internal/models"
	"grain_dryer/internal/service"
	"grain_dryer/internal/stream"

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

	lastSignUp     service.SignUpParams
	lastParseToken string
}

func (m *mockAuth) SignUp(p service.SignUpParams) (int, error) {
	m.lastSignUp = p
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockBroadcast struct {
	ingestResp models.Reading
	ingestErr  error
	lastInput  service.ReadingInput
	ingests    int
}

func (m *mockBroadcast) IngestReading(ctx context.Context, in service.ReadingInput) (models.Reading, error) {
	m.ingests++
	m.lastInput = in
	return m.ingestResp, m.ingestErr
}

func (m *mockBroadcast) Run(ctx context.Context, interval time.Duration) {}

func (m *mockBroadcast) LatestView(ctx context.Context) (models.ReadingView, bool) {
	return m.ingestResp.View(), m.ingestResp.ID != ""
}

type mockHistory struct {
	latest    *models.Reading
	latestErr error
	recent    []models.Reading
	recentErr error
	lastLimit int
}

func (m *mockHistory) Latest(ctx context.Context) (*models.Reading, error) {
	return m.latest, m.latestErr
}

func (m *mockHistory) Recent(ctx context.Context, limit int) ([]models.Reading, error) {
	m.lastLimit = limit
	return m.recent, m.recentErr
}

type mockNotifications struct {
	listResp    []models.Notification
	listErr     error
	lastFilter  service.NotificationFilter
	markedID    string
	markRows    int64
	markErr     error
	markAllRows int64
	markAllErr  error
}

func (m *mockNotifications) List(ctx context.Context, f service.NotificationFilter) ([]models.Notification, error) {
	m.lastFilter = f
	return m.listResp, m.listErr
}

func (m *mockNotifications) MarkRead(ctx context.Context, id string) (int64, error) {
	m.markedID = id
	return m.markRows, m.markErr
}

func (m *mockNotifications) MarkAllRead(ctx context.Context) (int64, error) {
	return m.markAllRows, m.markAllErr
}

type mockProfile struct {
	user       models.User
	getErr     error
	updateErr  error
	lastID     int
	lastParams service.ProfileParams
}

func (m *mockProfile) Get(ctx context.Context, userID int) (models.User, error) {
	m.lastID = userID
	return m.user, m.getErr
}

func (m *mockProfile) Update(ctx context.Context, userID int, p service.ProfileParams) (models.User, error) {
	m.lastID = userID
	m.lastParams = p
	if m.updateErr != nil {
		return models.User{}, m.updateErr
	}
	return m.user, nil
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	hub := stream.NewHub(logger.Get(logger.ErrorLevel))
	h := NewHandler(s, hub, nil)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
