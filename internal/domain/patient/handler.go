package patient

import (
	"net/http"
	"time"

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
	api.POST("/pacientes", h.Create)
	api.GET("/pacientes", h.List)
	api.GET("/pacientes/:id", h.Get)
	api.PUT("/pacientes/:id", h.Update)
	api.DELETE("/pacientes/:id", h.Delete)
}

type createRequest struct {
	Name      string  `json:"nome" validate:"required,min=2,max=100"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	CPF       string  `json:"cpf" validate:"required,len=11,digits"`
	Phone     *string `json:"telefone" validate:"omitempty,min=10,max=15"`
	BirthDate string  `json:"dataNascimento" validate:"required,isodate,past"`
}

type updateRequest struct {
	Name      *string `json:"nome" validate:"omitempty,min=2,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	CPF       *string `json:"cpf" validate:"omitempty,len=11,digits"`
	Phone     *string `json:"telefone" validate:"omitempty,min=10,max=15"`
	BirthDate *string `json:"dataNascimento" validate:"omitempty,isodate,past"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	birth, err := validation.ParseTime(req.BirthDate)
	if err != nil {
		return err
	}

	p, err := h.svc.Create(c.Request().Context(), CreateInput{
		Name:      req.Name,
		Email:     req.Email,
		CPF:       req.CPF,
		Phone:     req.Phone,
		BirthDate: birth,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) List(c echo.Context) error {
	patients, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	if patients == nil {
		patients = []*Patient{}
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := validation.ParseID(c.Param("id"))
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NewNotFound(entity, msgNotFound)
	}
	return c.JSON(http.StatusOK, p)
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

	in := UpdateInput{
		Name:  optional.FromPtr(req.Name),
		Email: optional.FromPtr(req.Email),
		CPF:   optional.FromPtr(req.CPF),
		Phone: optional.FromPtr(req.Phone),
	}
	if req.BirthDate != nil {
		birth, err := validation.ParseTime(*req.BirthDate)
		if err != nil {
			return err
		}
		in.BirthDate = optional.Some[time.Time](birth)
	}

	p, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
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
