package controller

import "github.com/labstack/echo/v4"

type CatalogController interface {
	// Register mounts the catalog routes on g, e.g. /catalog/fungus.
	Register(g *echo.Group)
	Create(c echo.Context) error
	List(c echo.Context) error
	Get(c echo.Context) error
	Delete(c echo.Context) error
	Labors(c echo.Context) error
	Import(c echo.Context) error
}
