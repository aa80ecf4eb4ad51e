package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dormdash/campus-eats/internal/config"
	"github.com/dormdash/campus-eats/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields      = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownRole        = errors.New("unknown role")
)

// JWTConfig holds configuration for JWT token generation
type JWTConfig struct {
	Secret    string
	ExpiresIn int // hours
}

// Account is a demo customer login
type Account struct {
	Username string
	Password string
}

// AuthService handles the two session mutations: login and logout
type AuthService struct {
	jwtConfig JWTConfig
	customers map[string][]byte
}

// NewAuthService creates a new authentication service. Customer account
// passwords are hashed here and never kept in clear text.
func NewAuthService(jwtConfig JWTConfig, customers []Account) (*AuthService, error) {
	s := &AuthService{
		jwtConfig: jwtConfig,
		customers: make(map[string][]byte, len(customers)),
	}

	for _, a := range customers {
		if a.Username == "" || a.Password == "" {
			return nil, fmt.Errorf("customer account needs both username and password")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		s.customers[a.Username] = hash
	}

	return s, nil
}

// NewAuthServiceFromConfig creates the auth service from the auth section of
// the configuration
func NewAuthServiceFromConfig(cfg config.Auth) (*AuthService, error) {
	customers := make([]Account, 0, len(cfg.Customers))
	for _, a := range cfg.Customers {
		customers = append(customers, Account{Username: a.Username, Password: a.Password})
	}

	return NewAuthService(JWTConfig{
		Secret:    cfg.JWT.Secret,
		ExpiresIn: cfg.JWT.ExpiresIn,
	}, customers)
}

// Claims represents JWT claims
type Claims struct {
	SessionID string `json:"sid"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Login checks the credentials for role and returns the logged-in session.
// Workers are accepted with any non-empty credentials; customers must match
// a configured demo account.
func (s *AuthService) Login(ctx context.Context, role models.UserRole, username, password string) (models.Session, error) {
	if username == "" || password == "" {
		return models.Session{}, ErrMissingFields
	}

	switch role {
	case models.RoleWorker:
	case models.RoleCustomer:
		hash, ok := s.customers[username]
		if !ok {
			return models.Session{}, ErrInvalidCredentials
		}
		if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
			return models.Session{}, ErrInvalidCredentials
		}
	default:
		return models.Session{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	return models.Session{
		ID:       uuid.NewString(),
		LoggedIn: true,
		Role:     role,
		Username: username,
	}, nil
}

// Logout returns the default logged-out session
func (s *AuthService) Logout() models.Session {
	return models.NewSession()
}

// GenerateToken issues a JWT carrying a logged-in session
func (s *AuthService) GenerateToken(sess models.Session) (string, error) {
	if !sess.LoggedIn {
		return "", fmt.Errorf("cannot issue token for anonymous session")
	}

	expirationTime := time.Now().Add(time.Duration(s.jwtConfig.ExpiresIn) * time.Hour)

	claims := &Claims{
		SessionID: sess.ID,
		Username:  sess.Username,
		Role:      string(sess.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.Username,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// SessionFromToken rebuilds the session a token was issued for
func (s *AuthService) SessionFromToken(tokenString string) (models.Session, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return models.Session{}, err
	}

	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return models.Session{}, fmt.Errorf("invalid role in token: %w", err)
	}
	if claims.Username == "" {
		return models.Session{}, errors.New("token has no username")
	}

	return models.Session{
		ID:       claims.SessionID,
		LoggedIn: true,
		Role:     role,
		Username: claims.Username,
	}, nil
}
