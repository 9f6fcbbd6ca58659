package doctor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/douglasmeneses/clinica-api/internal/platform/apperr"
	"github.com/douglasmeneses/clinica-api/internal/platform/validation"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc, _ := newTestService()
	e := echo.New()
	e.Validator = validation.New()
	e.HTTPErrorHandler = apperr.HTTPErrorHandler
	return NewHandler(svc), e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestHandler_Create(t *testing.T) {
	h, e := newTestHandler()

	body := `{"nome":"Dra. Helena Prado","email":"helena@clinica.com","crm":"123456","especialidade":"Cardiologia"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/medicos", body), rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var d Doctor
	json.Unmarshal(rec.Body.Bytes(), &d)
	if d.ID == 0 || d.Name != "Dra. Helena Prado" {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestHandler_Create_ValidationFailure(t *testing.T) {
	h, e := newTestHandler()

	body := `{"nome":"H","email":"helena@clinica.com","crm":"12a","especialidade":"Cardiologia"}`
	c := e.NewContext(jsonRequest(http.MethodPost, "/medicos", body), httptest.NewRecorder())

	err := h.Create(c)
	if !apperr.Is(err, apperr.Validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHandler_Create_DuplicateViaRouter(t *testing.T) {
	h, e := newTestHandler()
	h.RegisterRoutes(e.Group(""))

	body := `{"nome":"Dra. Helena Prado","email":"helena@clinica.com","crm":"123456","especialidade":"Cardiologia"}`
	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, jsonRequest(http.MethodPost, "/medicos", body))
		if rec.Code != want {
			t.Fatalf("request %d: expected %d, got %d (%s)", i, want, rec.Code, rec.Body.String())
		}
		if want == http.StatusConflict && !strings.Contains(rec.Body.String(), "Campo único já existe: email") {
			t.Errorf("unexpected conflict body %s", rec.Body.String())
		}
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, e := newTestHandler()
	h.RegisterRoutes(e.Group(""))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/medicos/99", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), msgNotFound) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestHandler_Get_InvalidID(t *testing.T) {
	h, e := newTestHandler()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.Get(c); !apperr.Is(err, apperr.Validation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestHandler_UpdateAndDelete(t *testing.T) {
	h, e := newTestHandler()
	created, _ := h.svc.Create(context.Background(), sampleInput())
	id := strconv.FormatInt(created.ID, 10)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/", `{"especialidade":"Pediatria"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var d Doctor
	json.Unmarshal(rec.Body.Bytes(), &d)
	if d.Specialty != "Pediatria" || d.CRM != "123456" {
		t.Errorf("unexpected body %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

func TestHandler_Update_EmptyStringRejected(t *testing.T) {
	h, e := newTestHandler()
	created, _ := h.svc.Create(context.Background(), sampleInput())

	c := e.NewContext(jsonRequest(http.MethodPut, "/", `{"nome":""}`), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(created.ID, 10))

	if err := h.Update(c); !apperr.Is(err, apperr.Validation) {
		t.Errorf("expected validation error for empty name, got %v", err)
	}
}

func TestHandler_List_Empty(t *testing.T) {
	h, e := newTestHandler()
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(httptest.NewRequest(http.MethodGet, "/medicos", nil), rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}
