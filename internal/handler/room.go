package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vilkasoft/carehome-backend/internal/repository"
	"github.com/vilkasoft/carehome-backend/internal/service"
)

// RoomHandler groups the inventory and occupancy operations on rooms.
type RoomHandler struct {
	Inventory *repository.InventoryRepo
	Occupancy *service.OccupancyService
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(inv *repository.InventoryRepo, occ *service.OccupancyService) *RoomHandler {
	if inv == nil || occ == nil {
		panic("nil dependency passed to NewRoomHandler")
	}
	return &RoomHandler{Inventory: inv, Occupancy: occ}
}

// CreateRoom handles POST /v1/rooms.
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var spec repository.RoomSpec
	if err := c.Bind(&spec); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	room, err := h.Inventory.CreateRoom(c.Request().Context(), spec)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

// ListRooms handles GET /v1/rooms.
func (h *RoomHandler) ListRooms(c echo.Context) error {
	rooms, err := h.Inventory.GetAllRooms(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// UpdateRoom handles PATCH /v1/rooms/:id.
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	var patch repository.RoomPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	room, err := h.Inventory.UpdateRoom(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /v1/rooms/:id.
func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	if err := h.Inventory.DeleteRoom(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SeedRooms handles POST /v1/rooms/seed.  The seed is idempotent: it
// does nothing when any room already exists.
func (h *RoomHandler) SeedRooms(c echo.Context) error {
	if err := h.Inventory.InitializeRoomData(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	rooms, err := h.Inventory.GetAllRooms(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": len(rooms)})
}

// RoomsWithOccupancy handles GET /v1/rooms/occupancy.
func (h *RoomHandler) RoomsWithOccupancy(c echo.Context) error {
	out, err := h.Occupancy.RoomsWithOccupancy(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// OccupancyStats handles GET /v1/occupancy/stats with optional floor,
// type and department query filters.
func (h *RoomHandler) OccupancyStats(c echo.Context) error {
	var filter service.StatsFilter
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
	stats, err := h.Occupancy.Stats(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
