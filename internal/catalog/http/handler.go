package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storelane/shopcore/internal/catalog/app"
	identityhttp "github.com/storelane/shopcore/internal/identity/http"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

// Register wires the catalog routes. public carries no auth; authed
// runs behind the JWT middleware (product mutation needs an admin).
func (h *Handler) Register(public, authed *echo.Group) {
	public.GET("/products", h.listProducts)
	public.GET("/products/filter", h.filterProducts)
	public.GET("/products/:id", h.getProduct)
	public.GET("/categories", h.listCategories)
	public.GET("/categories/:id", h.getCategory)

	authed.POST("/products", h.createProduct)
	authed.PATCH("/products/:id", h.updateProduct)
	authed.DELETE("/products/:id", h.deleteProduct)
}

func (h *Handler) listProducts(c echo.Context) error {
	products, err := h.svc.ListProducts(c.Request().Context())
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *Handler) filterProducts(c echo.Context) error {
	var f app.Filter
	if raw := c.QueryParam("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid category id"})
		}
		f.CategoryID = &id
	}
	f.Sort = c.QueryParam("sort")

	products, err := h.svc.FilterProducts(c.Request().Context(), f)
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *Handler) getProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid product id"})
	}
	p, err := h.svc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) createProduct(c echo.Context) error {
	actor, ok := identityhttp.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "unauthorized"})
	}

	var in productPayload
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request payload"})
	}

	p, err := h.svc.CreateProduct(c.Request().Context(), actor, in.toInput())
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) updateProduct(c echo.Context) error {
	actor, ok := identityhttp.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "unauthorized"})
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid product id"})
	}

	var in productPayload
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request payload"})
	}

	p, err := h.svc.UpdateProduct(c.Request().Context(), actor, id, in.toInput())
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) deleteProduct(c echo.Context) error {
	actor, ok := identityhttp.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "unauthorized"})
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid product id"})
	}

	if err := h.svc.DeleteProduct(c.Request().Context(), actor, id); err != nil {
		return mapErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) listCategories(c echo.Context) error {
	categories, err := h.svc.ListCategories(c.Request().Context())
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *Handler) getCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid category id"})
	}
	cat, err := h.svc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func mapErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, app.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "not found"})
	case errors.Is(err, app.ErrAdminOnly):
		return c.JSON(http.StatusForbidden, echo.Map{"detail": "Is Admin only."})
	case errors.Is(err, app.ErrInvalidInput),
		errors.Is(err, app.ErrFilterRequired),
		errors.Is(err, app.ErrBadDiscountRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal error"})
	}
}
