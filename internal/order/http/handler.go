package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	identityhttp "github.com/storelane/shopcore/internal/identity/http"
	"github.com/storelane/shopcore/internal/order/app"
	"github.com/storelane/shopcore/internal/order/domain"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

// Register wires the order routes; all of them require a logged-in user.
func (h *Handler) Register(g *echo.Group) {
	g.POST("/order/create", h.createOrder)
	g.PATCH("/order/cancel/:order_id", h.cancelOrder)
	g.GET("/order", h.listOrders)
	g.GET("/order/quote", h.quote)
}

func (h *Handler) createOrder(c echo.Context) error {
	ident, ok := identityhttp.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "unauthorized"})
	}

	var req domain.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request payload"})
	}
	req.IdempotentKey = c.Request().Header.Get("Idempotent-Key")
	if req.IdempotentKey != "" {
		// Normalize so differently-cased replays collide.
		if key, err := uuid.Parse(req.IdempotentKey); err == nil {
			req.IdempotentKey = key.String()
		}
	}

	res, err := h.svc.CreateOrder(c.Request().Context(), ident.UserID, req)
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) cancelOrder(c echo.Context) error {
	ident, ok := identityhttp.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid order id"})
	}

	res, err := h.svc.CancelOrder(c.Request().Context(), orderID, ident.UserID)
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) listOrders(c echo.Context) error {
	ident, ok := identityhttp.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "unauthorized"})
	}

	orders, err := h.svc.ListOrders(c.Request().Context(), ident.UserID)
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *Handler) quote(c echo.Context) error {
	ident, ok := identityhttp.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "unauthorized"})
	}

	q, err := h.svc.Quote(c.Request().Context(), ident.UserID)
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

// mapErr translates core errors to HTTP, keeping the offending detail
// in the body.
func mapErr(c echo.Context, err error) error {
	var (
		notFound     *app.ProductNotFoundError
		insufficient *app.InsufficientStockError
		conflict     *app.ConflictError
	)

	switch {
	case errors.Is(err, app.ErrEmptyCart),
		errors.Is(err, app.ErrAddressRequired),
		errors.Is(err, app.ErrPhoneRequired),
		errors.Is(err, app.ErrBadQuantity):
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": err.Error()})
	case errors.As(err, &notFound), errors.As(err, &insufficient):
		// Checkout-time failures are user-correctable: fix the cart
		// and resubmit.
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": err.Error()})
	case errors.Is(err, app.ErrOrderNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"detail": err.Error()})
	case errors.Is(err, app.ErrNotOwner):
		return c.JSON(http.StatusForbidden, echo.Map{"detail": err.Error()})
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{"detail": err.Error()})
	case errors.Is(err, app.ErrDuplicateKey):
		return c.JSON(http.StatusConflict, echo.Map{"detail": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal error"})
	}
}
