package controllerImp

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"vivero/entities"
	"vivero/pkg/apperror"
	farmSvc "vivero/pkg/farm/service"
	"vivero/pkg/httpx"
	"vivero/pkg/nursery/controller"
	"vivero/pkg/nursery/service"
)

type nurseryCtrl struct {
	s     service.NurseryService
	farms farmSvc.FarmService
}

func New(s service.NurseryService, farms farmSvc.FarmService) controller.NurseryController {
	return &nurseryCtrl{s: s, farms: farms}
}

type createReq struct {
	Code          string `json:"code"`
	CropType      string `json:"crop_type"`
	FarmID        uint   `json:"farm_id"`
	FarmCadastral string `json:"farm_cadastral"`
}

func (h *nurseryCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "bad json")
	}
	ctx := c.Request().Context()
	n := &entities.Nursery{Code: req.Code, CropType: req.CropType, FarmID: req.FarmID}
	if n.FarmID == 0 && req.FarmCadastral != "" {
		f, err := h.farms.GetByCadastral(ctx, req.FarmCadastral)
		if errors.Is(err, apperror.ErrNotFound) {
			ve := apperror.NewValidation("nursery")
			ve.Add("farm_cadastral", fmt.Sprintf("farm %q does not exist", req.FarmCadastral))
			return httpx.WriteError(c, ve)
		}
		if err != nil {
			return httpx.WriteError(c, err)
		}
		n.FarmID = f.FarmID
	}
	if err := h.s.ValidateAndCreate(ctx, n); err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *nurseryCtrl) Get(c echo.Context) error {
	n, err := h.s.GetByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusOK, n)
}

func (h *nurseryCtrl) Delete(c echo.Context) error {
	if err := h.s.Delete(c.Request().Context(), c.Param("code")); err != nil {
		return httpx.WriteError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Labors accepts optional from/to query params (YYYY-MM-DD).
func (h *nurseryCtrl) Labors(c echo.Context) error {
	var from, to *time.Time
	if v := c.QueryParam("from"); v != "" {
		t, err := entities.ParseDate(v)
		if err != nil {
			return httpx.BadRequest(c, err.Error())
		}
		from = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := entities.ParseDate(v)
		if err != nil {
			return httpx.BadRequest(c, err.Error())
		}
		to = &t
	}
	out, err := h.s.Labors(c.Request().Context(), c.Param("code"), from, to)
	if err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
