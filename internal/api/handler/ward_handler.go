package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wardlink/hospital-system/internal/core/ports"
)

type WardHandler struct {
	wards ports.WardService
}

func NewWardHandler(wards ports.WardService) *WardHandler {
	return &WardHandler{wards: wards}
}

// @Summary      List wards
// @Tags         wards
// @Produce      json
// @Success      200  {array}  domain.Ward
// @Security     BearerAuth
// @Router       /wards [get]
func (h *WardHandler) List(c echo.Context) error {
	wards, err := h.wards.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, wards)
}

// @Summary      Get a ward
// @Tags         wards
// @Produce      json
// @Param        id  path  string  true  "Ward id"
// @Success      200  {object}  domain.Ward
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /wards/{id} [get]
func (h *WardHandler) Get(c echo.Context) error {
	ward, err := h.wards.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ward)
}

// @Summary      Create a ward
// @Tags         wards
// @Accept       json
// @Produce      json
// @Success      201  {object}  domain.Ward
// @Failure      400  {object}  map[string]string
// @Security     BearerAuth
// @Router       /wards [post]
func (h *WardHandler) Create(c echo.Context) error {
	var req createWardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ward, err := h.wards.Create(c.Request().Context(), ports.CreateWardInput{
		Name:       req.Name,
		Type:       req.Type,
		HospitalID: req.HospitalID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ward)
}

// @Summary      Update a ward
// @Tags         wards
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Ward id"
// @Success      200  {object}  domain.Ward
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /wards/{id} [patch]
func (h *WardHandler) Update(c echo.Context) error {
	var req updateWardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ward, err := h.wards.Update(c.Request().Context(), c.Param("id"), ports.UpdateWardInput{
		Name: req.Name,
		Type: req.Type,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ward)
}

// @Summary      Delete a ward
// @Tags         wards
// @Produce      json
// @Param        id  path  string  true  "Ward id"
// @Success      200  {object}  domain.Ward
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /wards/{id} [delete]
func (h *WardHandler) Delete(c echo.Context) error {
	ward, err := h.wards.Remove(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ward)
}
