package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticator checks admin credentials.
type Authenticator interface {
	Authenticate(username, password string) error
}

// StaticCredentials is an Authenticator for a single admin account whose
// bcrypt password hash is supplied through configuration.
type StaticCredentials struct {
	Username     string
	PasswordHash string
}

// Authenticate compares the given credentials against the configured account.
func (c StaticCredentials) Authenticate(username, password string) error {
	if c.Username == "" || c.PasswordHash == "" || username != c.Username {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Session is the authenticated admin session carried by a token.
type Session struct {
	ID       string
	Username string
	Expires  time.Time
}

// AuthService handles login, logout and token validation for the admin panel.
type AuthService struct {
	auth      Authenticator
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *zap.Logger

	mu      sync.Mutex
	revoked map[string]time.Time // session id -> token expiry
}

// NewAuthService creates a new AuthService.
func NewAuthService(auth Authenticator, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{
		auth:      auth,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  12 * time.Hour,
		logger:    logger,
		revoked:   make(map[string]time.Time),
	}
}

// Login authenticates the admin and returns a signed JWT.
func (s *AuthService) Login(username, password string) (string, error) {
	if err := s.auth.Authenticate(username, password); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti":      uuid.NewString(),
		"username": username,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	s.logger.Info("Admin logged in", zap.String("username", username))
	return tokenString, nil
}

// Logout revokes the session. Later validations of the same token fail.
func (s *AuthService) Logout(session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[session.ID] = session.Expires
	now := time.Now()
	for id, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, id)
		}
	}
}

// ValidateToken parses and validates a JWT token, returning its session.
func (s *AuthService) ValidateToken(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		s.logger.Debug("Token validation error", zap.Error(err))
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	id, _ := claims["jti"].(string)
	username, _ := claims["username"].(string)
	exp, _ := claims["exp"].(float64)
	if id == "" {
		return nil, fmt.Errorf("invalid token: missing session id")
	}

	s.mu.Lock()
	_, revoked := s.revoked[id]
	s.mu.Unlock()
	if revoked {
		return nil, fmt.Errorf("invalid token: session ended")
	}
	return &Session{ID: id, Username: username, Expires: time.Unix(int64(exp), 0)}, nil
}
