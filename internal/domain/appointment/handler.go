package appointment

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
	api.POST("/consultas", h.Create)
	api.GET("/consultas", h.List)
	api.GET("/consultas/:id", h.Get)
	api.PUT("/consultas/:id", h.Update)
	api.DELETE("/consultas/:id", h.Delete)
}

type createRequest struct {
	ScheduledAt string  `json:"dataHora" validate:"required,isodate,future"`
	PatientID   int64   `json:"pacienteId" validate:"required,gt=0"`
	DoctorID    int64   `json:"medicoId" validate:"required,gt=0"`
	Reason      *string `json:"motivo" validate:"omitempty,max=500"`
}

type updateRequest struct {
	ScheduledAt *string `json:"dataHora" validate:"omitempty,isodate,future"`
	Reason      *string `json:"motivo" validate:"omitempty,max=500"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	when, err := validation.ParseTime(req.ScheduledAt)
	if err != nil {
		return err
	}

	a, err := h.svc.Create(c.Request().Context(), CreateInput{
		ScheduledAt: when,
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		Reason:      req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []*Summary{}
	}
	return c.JSON(http.StatusOK, items)
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

	in := UpdateInput{Reason: optional.FromPtr(req.Reason)}
	if req.ScheduledAt != nil {
		when, err := validation.ParseTime(*req.ScheduledAt)
		if err != nil {
			return err
		}
		in.ScheduledAt = optional.Some(when)
	}

	a, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
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
