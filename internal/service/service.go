package service

import (
	"context"

	"social_dashboard/internal/models"
	"social_dashboard/internal/repository"
)

// Authorization owns registration, credential checks and token handling.
type Authorization interface {
	SignUp(ctx context.Context, input SignUpInput) (int, error)
	SignIn(ctx context.Context, login, password string) (SignInResult, error)
	ParseToken(accessToken string) (int, error)
}

// Users exposes profile reads and owner-scoped profile mutations.
type Users interface {
	Get(ctx context.Context, id int) (models.User, error)
	UpdateProfile(ctx context.Context, id int, fullName, dateOfBirth string) (models.User, error)
	SetProfilePic(ctx context.Context, id int, picPath string) (models.User, error)
}

// Metrics exposes owner-scoped metric CRUD. Every successful mutation is
// followed by a best-effort broadcast to all connected realtime clients.
type Metrics interface {
	List(ctx context.Context, userID int) ([]models.Metric, error)
	Create(ctx context.Context, userID int, input MetricInput) (models.Metric, error)
	UpdateValue(ctx context.Context, id string, userID int, value string) (models.Metric, error)
	Delete(ctx context.Context, id string, userID int) error
}

// Broadcaster pushes metric change events to all connected realtime clients.
// Delivery is fire-and-forget: implementations must never block or fail the
// calling mutation.
type Broadcaster interface {
	MetricChanged(m models.Metric)
	MetricDeleted(id string)
}

type SignUpInput struct {
	Username    string
	Email       string
	Password    string
	FullName    string
	DateOfBirth string
}

type SignInResult struct {
	Token    string
	Username string
}

type MetricInput struct {
	Title    string
	Value    string
	Category string
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Users
	Metrics
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, broadcaster Broadcaster, signingKey string) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, signingKey),
		Users:         NewUserService(repos.Users),
		Metrics:       NewMetricsService(repos.Metrics, broadcaster),
	}
}
