package secretary

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/douglasmeneses/clinica-api/internal/platform/apperr"
	"github.com/douglasmeneses/clinica-api/internal/platform/validation"
	"github.com/douglasmeneses/clinica-api/pkg/optional"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/secretarios", h.Create)
	api.GET("/secretarios", h.List)
	api.GET("/secretarios/:id", h.Get)
	api.PUT("/secretarios/:id", h.Update)
	api.DELETE("/secretarios/:id", h.Delete)
}

type createRequest struct {
	Name     string  `json:"nome" validate:"required,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"senha" validate:"required,min=6,max=100"`
	Phone    *string `json:"telefone" validate:"omitempty,min=10,max=15"`
}

type updateRequest struct {
	Name  *string `json:"nome" validate:"omitempty,min=2,max=100"`
	Email *string `json:"email" validate:"omitempty,email,max=255"`
	Phone *string `json:"telefone" validate:"omitempty,min=10,max=15"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sec, err := h.svc.Create(c.Request().Context(), CreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sec)
}

func (h *Handler) List(c echo.Context) error {
	secs, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	if secs == nil {
		secs = []*Secretary{}
	}
	return c.JSON(http.StatusOK, secs)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := validation.ParseID(c.Param("id"))
	if err != nil {
		return err
	}
	sec, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if sec == nil {
		return apperr.NewNotFound(entity, msgNotFound)
	}
	return c.JSON(http.StatusOK, sec)
}

// Update ignores a "senha" key in the body; the request type has no such field.
func (h *Handler) Update(c echo.Context) error {
	id, err := validation.ParseID(c.Param("id"))
	if err != nil {
		return err
	}
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sec, err := h.svc.Update(c.Request().Context(), id, UpdateInput{
		Name:  optional.FromPtr(req.Name),
		Email: optional.FromPtr(req.Email),
		Phone: optional.FromPtr(req.Phone),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sec)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := validation.ParseID(c.Param("id"))
	if err != nil {
		return err
	}
	if _, err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
