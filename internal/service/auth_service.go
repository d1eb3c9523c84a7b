package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"social_dashboard/internal/models"
	"social_dashboard/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// Tokens are stateless: anyone holding the signing key can verify a
	// token minted by any other instance. There is no revocation; a leaked
	// token stays valid until it expires.
	tokenTTL = 24 * time.Hour

	bcryptCost = 12
)

// Domain errors for auth flows.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
)

// AuthService handles registration, login and token issue/verification.
type AuthService struct {
	userRepo   repository.Users
	signingKey []byte
}

func NewAuthService(userRepo repository.Users, signingKey string) *AuthService {
	return &AuthService{userRepo: userRepo, signingKey: []byte(signingKey)}
}

// Claims defines JWT claims carrying the user identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// SignUp hashes the password and creates a new user. Uniqueness violations
// from the store are propagated as-is.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (int, error) {
	hash, err := hashPassword(input.Password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	return s.userRepo.Create(ctx, models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
		DateOfBirth:  input.DateOfBirth,
	})
}

// SignIn matches login against username or email, verifies the password and
// issues a signed token. ErrUserNotFound and ErrInvalidPassword stay
// distinguishable so the HTTP layer can report 404 vs 400 as the original
// API does (this leaks account existence; kept as documented behavior).
func (s *AuthService) SignIn(ctx context.Context, login, password string) (SignInResult, error) {
	u, err := s.userRepo.GetByLogin(ctx, login)
	if err != nil {
		return SignInResult{}, err
	}
	if u == nil {
		return SignInResult{}, ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return SignInResult{}, ErrInvalidPassword
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return SignInResult{}, err
	}
	return SignInResult{Token: token, Username: u.Username}, nil
}

// ParseToken verifies signature and expiry and returns the embedded user id.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}
