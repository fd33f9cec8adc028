package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vilkasoft/carehome-backend/internal/model"
	"github.com/vilkasoft/carehome-backend/internal/repository"
	"github.com/vilkasoft/carehome-backend/internal/store"
)

func TestOccupancyStatsEmptyInventory(t *testing.T) {
	stats := ComputeOccupancyStats(nil, nil, StatsFilter{})
	require.Equal(t, 0, stats.TotalBeds)
	require.Equal(t, 0, stats.OccupancyRate, "empty facility has rate 0, not a division by zero")
	require.Empty(t, stats.ByFloor)
}

func TestOccupancyStatsCountsAndRate(t *testing.T) {
	rooms := []model.Room{
		{ID: "r1", Number: "101", Floor: 1, Department: model.DeptGeneral, Type: model.RoomTypeSingle},
		{ID: "r2", Number: "102", Floor: 1, Department: model.DeptGeneral, Type: model.RoomTypeDouble},
		{ID: "r3", Number: "301", Floor: 3, Department: model.DeptNursing, Type: model.RoomTypeDouble},
	}
	beds := []model.Bed{
		{ID: "b1", RoomID: "r1", Number: 1, Status: model.BedStatusOccupied, ResidentID: "res-1"},
		{ID: "b2", RoomID: "r2", Number: 1, Status: model.BedStatusReserved, HolderID: "lead-1"},
		{ID: "b3", RoomID: "r2", Number: 2, Status: model.BedStatusFree},
		{ID: "b4", RoomID: "r3", Number: 1, Status: model.BedStatusOccupied, ResidentID: "res-2"},
		{ID: "b5", RoomID: "r3", Number: 2, Status: model.BedStatusFree},
	}

	stats := ComputeOccupancyStats(rooms, beds, StatsFilter{})
	require.Equal(t, 5, stats.TotalBeds)
	require.Equal(t, 2, stats.FreeBeds)
	require.Equal(t, 1, stats.ReservedBeds)
	require.Equal(t, 2, stats.OccupiedBeds)
	require.Equal(t, 40, stats.OccupancyRate) // round(2/5*100)

	require.Equal(t, 3, stats.ByFloor["1"].TotalBeds)
	require.Equal(t, 33, stats.ByFloor["1"].OccupancyRate) // round(1/3*100)
	require.Equal(t, 2, stats.ByFloor["3"].TotalBeds)
	require.Equal(t, 50, stats.ByFloor["3"].OccupancyRate)

	require.Equal(t, 100, stats.ByRoomType[model.RoomTypeSingle].OccupancyRate)
	require.Equal(t, 25, stats.ByRoomType[model.RoomTypeDouble].OccupancyRate)
	require.Equal(t, 50, stats.ByDepartment[model.DeptNursing].OccupancyRate)
}

func TestOccupancyStatsFilter(t *testing.T) {
	rooms := []model.Room{
		{ID: "r1", Number: "101", Floor: 1, Department: model.DeptGeneral, Type: model.RoomTypeSingle},
		{ID: "r2", Number: "301", Floor: 3, Department: model.DeptNursing, Type: model.RoomTypeSingle},
	}
	beds := []model.Bed{
		{ID: "b1", RoomID: "r1", Number: 1, Status: model.BedStatusOccupied, ResidentID: "res-1"},
		{ID: "b2", RoomID: "r2", Number: 1, Status: model.BedStatusFree},
	}

	floor := 3
	stats := ComputeOccupancyStats(rooms, beds, StatsFilter{Floor: &floor})
	require.Equal(t, 1, stats.TotalBeds)
	require.Equal(t, 0, stats.OccupancyRate)
	require.NotContains(t, stats.ByFloor, "1")

	dept := model.DeptGeneral
	stats = ComputeOccupancyStats(rooms, beds, StatsFilter{Department: &dept})
	require.Equal(t, 1, stats.TotalBeds)
	require.Equal(t, 100, stats.OccupancyRate)
}

func TestRoomsWithOccupancyJoin(t *testing.T) {
	inv := repository.NewInventoryRepo(store.NewMemoryStore())
	svc := NewOccupancyService(inv)
	ctx := context.Background()

	_, err := inv.CreateRoom(ctx, repository.RoomSpec{Number: "102", Floor: 1, Type: model.RoomTypeDouble})
	require.NoError(t, err)
	_, err = inv.BookBed(ctx, "102", 1, "res-1")
	require.NoError(t, err)
	_, err = inv.ReserveBed(ctx, "102", 2, "lead-1")
	require.NoError(t, err)

	out, err := svc.RoomsWithOccupancy(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "102", out[0].Room.Number)
	require.Len(t, out[0].Beds, 2)
	require.Equal(t, 0, out[0].Free)
	require.Equal(t, 1, out[0].Reserved)
	require.Equal(t, 1, out[0].Occupied)
}
