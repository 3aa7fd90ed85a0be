package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vivero/entities"
	"vivero/pkg/httpx"
	"vivero/pkg/labor/controller"
	"vivero/pkg/labor/service"
)

type laborCtrl struct{ s service.LaborService }

func New(s service.LaborService) controller.LaborController { return &laborCtrl{s} }

func (h *laborCtrl) Create(c echo.Context) error {
	var in service.LaborInput
	if err := c.Bind(&in); err != nil {
		return httpx.BadRequest(c, "bad json")
	}
	l, err := h.s.Record(c.Request().Context(), in)
	if err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *laborCtrl) Get(c echo.Context) error {
	id, err := httpx.ParseUint(c.Param("id"))
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	l, err := h.s.Get(c.Request().Context(), id)
	if err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"labor": l, "display": l.String()})
}

func (h *laborCtrl) Patch(c echo.Context) error {
	id, err := httpx.ParseUint(c.Param("id"))
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	var p service.LaborPatch
	if err := c.Bind(&p); err != nil {
		return httpx.BadRequest(c, "bad json")
	}
	l, err := h.s.Patch(c.Request().Context(), id, p)
	if err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *laborCtrl) Delete(c echo.Context) error {
	id, err := httpx.ParseUint(c.Param("id"))
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	if err := h.s.Delete(c.Request().Context(), id); err != nil {
		return httpx.WriteError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *laborCtrl) AddProduct(c echo.Context) error {
	id, err := httpx.ParseUint(c.Param("id"))
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	var ref service.ProductRef
	if err := c.Bind(&ref); err != nil {
		return httpx.BadRequest(c, "bad json")
	}
	ctx := c.Request().Context()
	if err := h.s.AddProduct(ctx, id, ref); err != nil {
		return httpx.WriteError(c, err)
	}
	l, err := h.s.Get(ctx, id)
	if err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *laborCtrl) RemoveProduct(c echo.Context) error {
	id, err := httpx.ParseUint(c.Param("id"))
	if err != nil {
		return httpx.BadRequest(c, "invalid id")
	}
	ref := service.ProductRef{Kind: entities.ProductKind(c.Param("kind")), RegistryID: c.Param("registry_id")}
	if err := h.s.RemoveProduct(c.Request().Context(), id, ref); err != nil {
		return httpx.WriteError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
