package controllerImp

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"vivero/entities"
	"vivero/pkg/apperror"
	"vivero/pkg/farm/controller"
	"vivero/pkg/farm/service"
	"vivero/pkg/httpx"
	producerSvc "vivero/pkg/producer/service"
)

type farmCtrl struct {
	s         service.FarmService
	producers producerSvc.ProducerService
}

func New(s service.FarmService, producers producerSvc.ProducerService) controller.FarmController {
	return &farmCtrl{s: s, producers: producers}
}

// createReq names the owner either by id or by identity document.
type createReq struct {
	CadastralNumber  string `json:"cadastral_number"`
	Municipality     string `json:"municipality"`
	ProducerID       uint   `json:"producer_id"`
	ProducerDocument string `json:"producer_document"`
}

func (h *farmCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "bad json")
	}
	ctx := c.Request().Context()
	f := &entities.Farm{CadastralNumber: req.CadastralNumber, Municipality: req.Municipality, ProducerID: req.ProducerID}
	if f.ProducerID == 0 && req.ProducerDocument != "" {
		p, err := h.producers.GetByDocument(ctx, req.ProducerDocument)
		if errors.Is(err, apperror.ErrNotFound) {
			ve := apperror.NewValidation("farm")
			ve.Add("producer_document", fmt.Sprintf("producer %q does not exist", req.ProducerDocument))
			return httpx.WriteError(c, ve)
		}
		if err != nil {
			return httpx.WriteError(c, err)
		}
		f.ProducerID = p.ProducerID
	}
	if err := h.s.ValidateAndCreate(ctx, f); err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *farmCtrl) List(c echo.Context) error {
	out, err := h.s.List(c.Request().Context())
	if err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *farmCtrl) Get(c echo.Context) error {
	f, err := h.s.GetByCadastral(c.Request().Context(), c.Param("cadastral"))
	if err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"farm": f, "display": f.String()})
}

func (h *farmCtrl) Delete(c echo.Context) error {
	if err := h.s.Delete(c.Request().Context(), c.Param("cadastral")); err != nil {
		return httpx.WriteError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *farmCtrl) Nurseries(c echo.Context) error {
	out, err := h.s.Nurseries(c.Request().Context(), c.Param("cadastral"))
	if err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
