package controller

import "github.com/labstack/echo/v4"

type NurseryController interface {
	Create(c echo.Context) error
	Get(c echo.Context) error
	Delete(c echo.Context) error
	Labors(c echo.Context) error
}
