package http

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storelane/shopcore/internal/identity/app"
	"github.com/storelane/shopcore/internal/identity/domain"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(g *echo.Group) {
	g.POST("/register", h.register)
	g.POST("/login", h.login)
}

// Middleware validates bearer tokens and stashes the decoded claims on
// the request context.
func Middleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(app.Claims)
		},
	})
}

// CurrentIdentity resolves the authenticated caller from the request.
// The bool is false on routes that skipped the JWT middleware.
func CurrentIdentity(c echo.Context) (domain.Identity, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return domain.Identity{}, false
	}
	claims, ok := token.Claims.(*app.Claims)
	if !ok {
		return domain.Identity{}, false
	}
	return claims.Identity(), true
}

func (h *Handler) register(c echo.Context) error {
	var req app.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request payload"})
	}

	u, err := h.svc.Register(c.Request().Context(), req)
	if err != nil {
		return mapErr(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "registered successfully!",
		"user_id": u.ID,
	})
}

func (h *Handler) login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request payload"})
	}

	res, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return mapErr(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful!",
		"user_id": res.UserID,
		"role":    res.Role,
		"access":  res.Token,
	})
}

func mapErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": err.Error()})
	case errors.Is(err, app.ErrInvalidInput),
		errors.Is(err, app.ErrPasswordMismatch),
		errors.Is(err, app.ErrEmailTaken),
		errors.Is(err, app.ErrUsernameTaken):
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal error"})
	}
}
