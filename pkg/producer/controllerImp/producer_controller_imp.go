package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vivero/entities"
	"vivero/pkg/httpx"
	"vivero/pkg/producer/controller"
	"vivero/pkg/producer/service"
)

type producerCtrl struct{ s service.ProducerService }

func New(s service.ProducerService) controller.ProducerController { return &producerCtrl{s} }

type createReq struct {
	IdentityDocument string `json:"identity_document"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
}

func (h *producerCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "bad json")
	}
	p := &entities.Producer{
		IdentityDocument: req.IdentityDocument,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		Email:            req.Email,
	}
	if err := h.s.ValidateAndCreate(c.Request().Context(), p); err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *producerCtrl) List(c echo.Context) error {
	out, err := h.s.List(c.Request().Context())
	if err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *producerCtrl) Get(c echo.Context) error {
	p, err := h.s.GetByDocument(c.Request().Context(), c.Param("document"))
	if err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *producerCtrl) Patch(c echo.Context) error {
	var patch service.ProducerPatch
	if err := c.Bind(&patch); err != nil {
		return httpx.BadRequest(c, "bad json")
	}
	p, err := h.s.UpdateContact(c.Request().Context(), c.Param("document"), patch)
	if err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *producerCtrl) Delete(c echo.Context) error {
	if err := h.s.Delete(c.Request().Context(), c.Param("document")); err != nil {
		return httpx.WriteError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *producerCtrl) Farms(c echo.Context) error {
	out, err := h.s.Farms(c.Request().Context(), c.Param("document"))
	if err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
