package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vilkasoft/carehome-backend/internal/repository"
)

// BedHandler exposes the bed state machine over HTTP.  Bed routes are
// addressed by room display number and bed number, the identifiers
// staff actually work with.
type BedHandler struct {
	Inventory *repository.InventoryRepo
}

// NewBedHandler constructs a BedHandler.
func NewBedHandler(inv *repository.InventoryRepo) *BedHandler {
	if inv == nil {
		panic("nil repository passed to NewBedHandler")
	}
	return &BedHandler{Inventory: inv}
}

// bedParams extracts the room number and bed number path parameters.
func bedParams(c echo.Context) (string, int, bool) {
	room := c.Param("number")
	bed, err := strconv.Atoi(c.Param("bed"))
	if room == "" || err != nil || bed < 1 {
		return "", 0, false
	}
	return room, bed, true
}

// ListBeds handles GET /v1/beds.
func (h *BedHandler) ListBeds(c echo.Context) error {
	beds, err := h.Inventory.GetAllBeds(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, beds)
}

// AvailableBeds handles GET /v1/beds/available with optional floor,
// type and department query filters.
func (h *BedHandler) AvailableBeds(c echo.Context) error {
	var filter repository.BedFilter
	if v := c.QueryParam("floor"); v != "" {
		floor, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor"})
		}
		filter.Floor = &floor
	}
	if v := c.QueryParam("type"); v != "" {
		filter.RoomType = &v
	}
	if v := c.QueryParam("department"); v != "" {
		filter.Department = &v
	}
	beds, err := h.Inventory.AvailableBeds(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, beds)
}

// Reserve handles POST /v1/rooms/:number/beds/:bed/reserve.
func (h *BedHandler) Reserve(c echo.Context) error {
	room, bedNum, ok := bedParams(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room or bed number"})
	}
	var body struct {
		HolderID string `json:"holder_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	bed, err := h.Inventory.ReserveBed(c.Request().Context(), room, bedNum, body.HolderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bed)
}

// CancelReservation handles POST /v1/rooms/:number/beds/:bed/cancel.
func (h *BedHandler) CancelReservation(c echo.Context) error {
	room, bedNum, ok := bedParams(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room or bed number"})
	}
	bed, err := h.Inventory.CancelReservation(c.Request().Context(), room, bedNum)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bed)
}

// Book handles POST /v1/rooms/:number/beds/:bed/book for direct
// booking or confirming a reservation.
func (h *BedHandler) Book(c echo.Context) error {
	room, bedNum, ok := bedParams(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room or bed number"})
	}
	var body struct {
		ResidentID string `json:"resident_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	bed, err := h.Inventory.BookBed(c.Request().Context(), room, bedNum, body.ResidentID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bed)
}

// Release handles POST /v1/rooms/:number/beds/:bed/release.
func (h *BedHandler) Release(c echo.Context) error {
	room, bedNum, ok := bedParams(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room or bed number"})
	}
	bed, err := h.Inventory.ReleaseBed(c.Request().Context(), room, bedNum)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bed)
}
