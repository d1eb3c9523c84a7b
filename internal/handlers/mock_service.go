package handlers

import (
	"context"

	"social_dashboard/internal/models"
	"social_dashboard/internal/service"
	"social_dashboard/internal/ws"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID  int
	signUpErr error
	signInRes service.SignInResult
	signInErr error
	parseID   int
	parseErr  error

	lastSignUp     service.SignUpInput
	lastLogin      string
	lastPassword   string
	lastParseToken string
}

func (m *mockAuth) SignUp(_ context.Context, input service.SignUpInput) (int, error) {
	m.lastSignUp = input
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) SignIn(_ context.Context, login, password string) (service.SignInResult, error) {
	m.lastLogin = login
	m.lastPassword = password
	return m.signInRes, m.signInErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockUsers struct {
	user models.User
	err  error

	lastID       int
	lastFullName string
	lastDOB      string
	lastPicPath  string
}

func (m *mockUsers) Get(_ context.Context, id int) (models.User, error) {
	m.lastID = id
	return m.user, m.err
}

func (m *mockUsers) UpdateProfile(_ context.Context, id int, fullName, dateOfBirth string) (models.User, error) {
	m.lastID = id
	m.lastFullName = fullName
	m.lastDOB = dateOfBirth
	return m.user, m.err
}

func (m *mockUsers) SetProfilePic(_ context.Context, id int, picPath string) (models.User, error) {
	m.lastID = id
	m.lastPicPath = picPath
	return m.user, m.err
}

type mockMetrics struct {
	list      []models.Metric
	listErr   error
	created   models.Metric
	createErr error
	updated   models.Metric
	updateErr error
	deleteErr error

	lastUserID      int
	lastMetricID    string
	lastValue       string
	lastCreateInput service.MetricInput
}

func (m *mockMetrics) List(_ context.Context, userID int) ([]models.Metric, error) {
	m.lastUserID = userID
	return m.list, m.listErr
}

func (m *mockMetrics) Create(_ context.Context, userID int, input service.MetricInput) (models.Metric, error) {
	m.lastUserID = userID
	m.lastCreateInput = input
	return m.created, m.createErr
}

func (m *mockMetrics) UpdateValue(_ context.Context, id string, userID int, value string) (models.Metric, error) {
	m.lastUserID = userID
	m.lastMetricID = id
	m.lastValue = value
	return m.updated, m.updateErr
}

func (m *mockMetrics) Delete(_ context.Context, id string, userID int) error {
	m.lastUserID = userID
	m.lastMetricID = id
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, uploadsDir string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, ws.NewHub(nil), nil, uploadsDir, nil)
	return h.InitRoutes()
}
