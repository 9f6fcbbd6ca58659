package doctor

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
	api.POST("/medicos", h.Create)
	api.GET("/medicos", h.List)
	api.GET("/medicos/:id", h.Get)
	api.PUT("/medicos/:id", h.Update)
	api.DELETE("/medicos/:id", h.Delete)
}

type createRequest struct {
	Name      string `json:"nome" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	CRM       string `json:"crm" validate:"required,min=4,max=20,digits"`
	Specialty string `json:"especialidade" validate:"required,min=2,max=100"`
}

type updateRequest struct {
	Name      *string `json:"nome" validate:"omitempty,min=2,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	CRM       *string `json:"crm" validate:"omitempty,min=4,max=20,digits"`
	Specialty *string `json:"especialidade" validate:"omitempty,min=2,max=100"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	d, err := h.svc.Create(c.Request().Context(), CreateInput{
		Name:      req.Name,
		Email:     req.Email,
		CRM:       req.CRM,
		Specialty: req.Specialty,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) List(c echo.Context) error {
	doctors, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	if doctors == nil {
		doctors = []*Doctor{}
	}
	return c.JSON(http.StatusOK, doctors)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := validation.ParseID(c.Param("id"))
	if err != nil {
		return err
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if d == nil {
		return apperr.NewNotFound(entity, msgNotFound)
	}
	return c.JSON(http.StatusOK, d)
}

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

	d, err := h.svc.Update(c.Request().Context(), id, UpdateInput{
		Name:      optional.FromPtr(req.Name),
		Email:     optional.FromPtr(req.Email),
		CRM:       optional.FromPtr(req.CRM),
		Specialty: optional.FromPtr(req.Specialty),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
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
