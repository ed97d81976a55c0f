package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storelane/shopcore/internal/cart/app"
	identityhttp "github.com/storelane/shopcore/internal/identity/http"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

// Register wires the cart routes; all of them require a logged-in user.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/cart", h.list)
	g.POST("/cart", h.addItem)
	g.GET("/cart/item", h.getItemByProduct)
	g.PATCH("/cart/item/update", h.updateQuantity)
	g.DELETE("/cart/:id", h.removeItem)
}

func (h *Handler) list(c echo.Context) error {
	ident, ok := identityhttp.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "unauthorized"})
	}

	items, err := h.svc.ListItems(c.Request().Context(), ident.UserID)
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) addItem(c echo.Context) error {
	ident, ok := identityhttp.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "unauthorized"})
	}

	var req struct {
		ProductID int64 `json:"product_id"`
		Quantity  int64 `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request payload"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.svc.AddItem(c.Request().Context(), ident.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *Handler) getItemByProduct(c echo.Context) error {
	ident, ok := identityhttp.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "unauthorized"})
	}

	productID, err := queryProductID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "product_id query parameter is required."})
	}

	item, err := h.svc.GetItemByProduct(c.Request().Context(), ident.UserID, productID)
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) updateQuantity(c echo.Context) error {
	ident, ok := identityhttp.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "unauthorized"})
	}

	productID, err := queryProductID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "product_id query parameter is required."})
	}

	var req struct {
		Quantity int64 `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request payload"})
	}

	item, err := h.svc.SetItemQuantity(c.Request().Context(), ident.UserID, productID, req.Quantity)
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) removeItem(c echo.Context) error {
	ident, ok := identityhttp.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid cart item id"})
	}

	if err := h.svc.RemoveItem(c.Request().Context(), ident.UserID, id); err != nil {
		return mapErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func queryProductID(c echo.Context) (int64, error) {
	raw := c.QueryParam("product_id")
	if raw == "" {
		return 0, errors.New("missing product_id")
	}
	return strconv.ParseInt(raw, 10, 64)
}

func mapErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, app.ErrItemNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "cart item not found"})
	case errors.Is(err, app.ErrBadQuantity):
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal error"})
	}
}
