package controllerImp

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"vivero/entities"
	"vivero/pkg/catalog/controller"
	"vivero/pkg/catalog/importer"
	"vivero/pkg/catalog/service"
	"vivero/pkg/httpx"
)

type catalogCtrl[T any, PT entities.Product[T]] struct {
	s        service.CatalogService[T]
	maxBytes int64
}

// New builds the handlers for one catalog. Uploads larger than maxBytes are rejected.
func New[T any, PT entities.Product[T]](s service.CatalogService[T], maxBytes int64) controller.CatalogController {
	return &catalogCtrl[T, PT]{s: s, maxBytes: maxBytes}
}

func (h *catalogCtrl[T, PT]) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.POST("/import", h.Import)
	g.GET("/:registry_id", h.Get)
	g.DELETE("/:registry_id", h.Delete)
	g.GET("/:registry_id/labors", h.Labors)
}

func (h *catalogCtrl[T, PT]) Create(c echo.Context) error {
	p := new(T)
	if err := c.Bind(p); err != nil {
		return httpx.BadRequest(c, "bad json")
	}
	// ids are assigned by storage
	base := PT(p).Base()
	base.ProductID = 0
	if err := h.s.ValidateAndCreate(c.Request().Context(), p); err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *catalogCtrl[T, PT]) List(c echo.Context) error {
	out, err := h.s.List(c.Request().Context())
	if err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *catalogCtrl[T, PT]) Get(c echo.Context) error {
	p, err := h.s.Get(c.Request().Context(), c.Param("registry_id"))
	if err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"product": p, "display": PT(p).Base().String()})
}

func (h *catalogCtrl[T, PT]) Delete(c echo.Context) error {
	if err := h.s.Delete(c.Request().Context(), c.Param("registry_id")); err != nil {
		return httpx.WriteError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *catalogCtrl[T, PT]) Labors(c echo.Context) error {
	out, err := h.s.Labors(c.Request().Context(), c.Param("registry_id"))
	if err != nil {
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Import takes a multipart "file"; the format comes from ?format= or the file name.
func (h *catalogCtrl[T, PT]) Import(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return httpx.BadRequest(c, "missing multipart field \"file\"")
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": fmt.Sprintf("file exceeds %d bytes", h.maxBytes)})
	}
	var f importer.Format
	if q := c.QueryParam("format"); q != "" {
		f, err = importer.ParseFormat(q)
	} else {
		f, err = importer.FormatFromName(fh.Filename)
	}
	if err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	src, err := fh.Open()
	if err != nil {
		return httpx.BadRequest(c, "cannot read upload")
	}
	defer src.Close()

	res, err := h.s.ImportFrom(c.Request().Context(), f, src)
	if err != nil {
		if errors.Is(err, importer.ErrUnreadable) {
			return httpx.BadRequest(c, err.Error())
		}
		return httpx.WriteError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
