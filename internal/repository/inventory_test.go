package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vilkasoft/carehome-backend/internal/model"
	"github.com/vilkasoft/carehome-backend/internal/store"
)

func newInventory(t *testing.T) *InventoryRepo {
	t.Helper()
	return NewInventoryRepo(store.NewMemoryStore())
}

func TestCreateRoomDerivesDepartmentAndBeds(t *testing.T) {
	repo := newInventory(t)
	ctx := context.Background()

	cases := []struct {
		number string
		floor  int
		typ    string
		dept   string
		beds   int
	}{
		{"101", 1, model.RoomTypeSingle, model.DeptGeneral, 1},
		{"201", 2, model.RoomTypeDouble, model.DeptGeneral, 2},
		{"301", 3, model.RoomTypeDouble, model.DeptNursing, 2},
		{"401", 4, model.RoomTypeSingle, model.DeptMemoryCare, 1},
		{"501", 5, model.RoomTypeSingle, model.DeptGeneral, 1}, // unmapped floor falls back
	}
	for _, tc := range cases {
		room, err := repo.CreateRoom(ctx, RoomSpec{Number: tc.number, Floor: tc.floor, Type: tc.typ})
		require.NoError(t, err, tc.number)
		require.Equal(t, tc.dept, room.Department, tc.number)
		require.Equal(t, model.RoomStatusAvailable, room.Status)
	}

	beds, err := repo.GetAllBeds(ctx)
	require.NoError(t, err)
	perRoom := map[string]int{}
	for _, b := range beds {
		require.Equal(t, model.BedStatusFree, b.Status)
		perRoom[b.RoomID]++
	}
	rooms, err := repo.GetAllRooms(ctx)
	require.NoError(t, err)
	for i, rm := range rooms {
		require.Equal(t, cases[i].beds, perRoom[rm.ID], rm.Number)
	}
}

func TestCreateRoomCollectsAllProblems(t *testing.T) {
	repo := newInventory(t)
	ctx := context.Background()

	_, err := repo.CreateRoom(ctx, RoomSpec{Number: "  ", Type: "SUITE", Status: "CLOSED"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 3)

	// Nothing was written.
	rooms, err := repo.GetAllRooms(ctx)
	require.NoError(t, err)
	require.Empty(t, rooms)
}

func TestCreateRoomRejectsDuplicateNumber(t *testing.T) {
	repo := newInventory(t)
	ctx := context.Background()

	_, err := repo.CreateRoom(ctx, RoomSpec{Number: "101", Floor: 1, Type: model.RoomTypeSingle})
	require.NoError(t, err)

	_, err = repo.CreateRoom(ctx, RoomSpec{Number: "101", Floor: 2, Type: model.RoomTypeDouble})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Problems[0], "already in use")
}

func TestUpdateRoomNumberIsImmutable(t *testing.T) {
	repo := newInventory(t)
	ctx := context.Background()

	room, err := repo.CreateRoom(ctx, RoomSpec{Number: "101", Floor: 1, Type: model.RoomTypeSingle})
	require.NoError(t, err)

	other := "102"
	_, err = repo.UpdateRoom(ctx, room.ID, RoomPatch{Number: &other})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	// Sending the unchanged number is fine.
	same := "101"
	_, err = repo.UpdateRoom(ctx, room.ID, RoomPatch{Number: &same})
	require.NoError(t, err)
}

func TestUpdateRoomFloorRecomputesDepartment(t *testing.T) {
	repo := newInventory(t)
	ctx := context.Background()

	room, err := repo.CreateRoom(ctx, RoomSpec{Number: "101", Floor: 1, Type: model.RoomTypeSingle})
	require.NoError(t, err)
	require.Equal(t, model.DeptGeneral, room.Department)

	floor := 3
	room, err = repo.UpdateRoom(ctx, room.ID, RoomPatch{Floor: &floor})
	require.NoError(t, err)
	require.Equal(t, model.DeptNursing, room.Department)
}

func TestUpdateRoomTypeGrowsAndShrinksBeds(t *testing.T) {
	repo := newInventory(t)
	ctx := context.Background()

	room, err := repo.CreateRoom(ctx, RoomSpec{Number: "101", Floor: 1, Type: model.RoomTypeSingle})
	require.NoError(t, err)

	double := model.RoomTypeDouble
	_, err = repo.UpdateRoom(ctx, room.ID, RoomPatch{Type: &double})
	require.NoError(t, err)
	beds, err := repo.GetAllBeds(ctx)
	require.NoError(t, err)
	require.Len(t, beds, 2)

	// Occupy bed 2, then shrinking back to single must conflict.
	_, err = repo.BookBed(ctx, "101", 2, "res-1")
	require.NoError(t, err)
	single := model.RoomTypeSingle
	_, err = repo.UpdateRoom(ctx, room.ID, RoomPatch{Type: &single})
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)

	// The failed shrink changed nothing.
	beds, err = repo.GetAllBeds(ctx)
	require.NoError(t, err)
	require.Len(t, beds, 2)

	// Once the bed is free again the shrink goes through.
	_, err = repo.ReleaseBed(ctx, "101", 2)
	require.NoError(t, err)
	_, err = repo.UpdateRoom(ctx, room.ID, RoomPatch{Type: &single})
	require.NoError(t, err)
	beds, err = repo.GetAllBeds(ctx)
	require.NoError(t, err)
	require.Len(t, beds, 1)
	require.Equal(t, 1, beds[0].Number)
}

func TestDeleteRoomRefusesWhileBedsInUse(t *testing.T) {
	repo := newInventory(t)
	ctx := context.Background()

	room, err := repo.CreateRoom(ctx, RoomSpec{Number: "102", Floor: 1, Type: model.RoomTypeDouble})
	require.NoError(t, err)
	_, err = repo.ReserveBed(ctx, "102", 1, "lead-1")
	require.NoError(t, err)

	var cerr *ConflictError
	require.ErrorAs(t, repo.DeleteRoom(ctx, room.ID), &cerr)

	// Room and both beds are still there.
	rooms, err := repo.GetAllRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	beds, err := repo.GetAllBeds(ctx)
	require.NoError(t, err)
	require.Len(t, beds, 2)

	_, err = repo.CancelReservation(ctx, "102", 1)
	require.NoError(t, err)
	require.NoError(t, repo.DeleteRoom(ctx, room.ID))

	beds, err = repo.GetAllBeds(ctx)
	require.NoError(t, err)
	require.Empty(t, beds)
}

func TestInitializeRoomDataIsIdempotent(t *testing.T) {
	repo := newInventory(t)
	ctx := context.Background()

	require.NoError(t, repo.InitializeRoomData(ctx))
	rooms, err := repo.GetAllRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 11)

	// Occupy a bed, re-seed, and the occupancy must survive.
	_, err = repo.BookBed(ctx, "101", 1, "res-1")
	require.NoError(t, err)
	require.NoError(t, repo.InitializeRoomData(ctx))

	bed, err := repo.ReleaseBed(ctx, "101", 1)
	require.NoError(t, err)
	require.Equal(t, model.BedStatusFree, bed.Status)

	rooms, err = repo.GetAllRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 11)
}

func TestRoomByNumber(t *testing.T) {
	repo := newInventory(t)
	ctx := context.Background()

	created, err := repo.CreateRoom(ctx, RoomSpec{Number: "203", Floor: 2, Type: model.RoomTypeSingle})
	require.NoError(t, err)

	room, err := repo.RoomByNumber(ctx, "203")
	require.NoError(t, err)
	require.Equal(t, created.ID, room.ID)

	_, err = repo.RoomByNumber(ctx, "999")
	require.ErrorIs(t, err, ErrRoomNotFound)
}
