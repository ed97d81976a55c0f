package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/storelane/shopcore/internal/identity/domain"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const tokenTTL = 24 * time.Hour

// Claims is the JWT payload; echo-jwt decodes incoming tokens into it.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() domain.Identity {
	return domain.Identity{UserID: c.UserID, Admin: c.Role == "admin"}
}

type Service struct {
	repo   UserRepo
	tokens TokenStore // optional
	secret []byte
}

func NewService(repo UserRepo, secret string) *Service {
	return &Service{repo: repo, secret: []byte(secret)}
}

func (s *Service) WithTokenStore(ts TokenStore) *Service {
	s.tokens = ts
	return s
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (domain.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return domain.User{}, ErrInvalidInput
	}
	if req.Password != req.Password2 {
		return domain.User{}, ErrPasswordMismatch
	}

	taken, err := s.repo.EmailTaken(ctx, req.Email)
	if err != nil {
		return domain.User{}, err
	}
	if taken {
		return domain.User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

type LoginResult struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	Token  string `json:"access"`
}

func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		// A missing user and a bad password look the same to callers.
		return LoginResult{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	claims := &Claims{
		UserID: u.ID,
		Role:   u.Role(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   u.Username,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return LoginResult{}, err
	}

	if s.tokens != nil {
		if err := s.tokens.Save(ctx, u.Username, token); err != nil {
			return LoginResult{}, err
		}
	}

	return LoginResult{UserID: u.ID, Role: u.Role(), Token: token}, nil
}

// ParseToken validates a signed token and returns its claims. Used by
// tests and non-echo callers; HTTP routes rely on the echo-jwt
// middleware configured with the same secret.
func (s *Service) ParseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}
