package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vilkasoft/carehome-backend/internal/model"
)

// Bed state machine.  Every transition below is check-then-write: the
// current document is read, the bed's status is checked against the
// transition, and the whole document is rewritten.  Nothing guards the
// window between read and write against a second writer; the system
// assumes a single logical writer (see package comment in errors.go).

// findBed locates a bed by room display number and bed number within
// the loaded document and returns its index in doc.Beds.
func findBed(doc *inventoryDocument, roomNumber string, bedNumber int) (room model.Room, idx int, err error) {
	idx = -1
	found := false
	for _, rm := range doc.Rooms {
		if rm.Number == roomNumber {
			room = rm
			found = true
			break
		}
	}
	if !found {
		return model.Room{}, -1, ErrRoomNotFound
	}
	for i := range doc.Beds {
		if doc.Beds[i].RoomID == room.ID && doc.Beds[i].Number == bedNumber {
			return room, i, nil
		}
	}
	return room, -1, ErrBedNotFound
}

// ReserveBed places a tentative hold on a free bed for the given
// holder (usually a lead).  It conflicts when the bed is not free: an
// occupied bed must be released back to free before it can be reserved
// again.
func (r *InventoryRepo) ReserveBed(ctx context.Context, roomNumber string, bedNumber int, holderID string) (model.Bed, error) {
	if holderID == "" {
		return model.Bed{}, Validation("reservation holder is required")
	}
	doc, err := r.load(ctx)
	if err != nil {
		return model.Bed{}, err
	}
	room, i, err := findBed(doc, roomNumber, bedNumber)
	if err != nil {
		return model.Bed{}, err
	}
	bed := doc.Beds[i]
	if bed.Status != model.BedStatusFree {
		return model.Bed{}, Conflict(fmt.Sprintf(
			"bed %d in room %s is %s", bedNumber, room.Number, bed.Status))
	}
	bed.Status = model.BedStatusReserved
	bed.HolderID = holderID
	doc.Beds[i] = bed
	if err := r.save(ctx, doc); err != nil {
		return model.Bed{}, err
	}
	return bed, nil
}

// CancelReservation releases a tentative hold, returning the bed to
// its exact pre-reservation state.
func (r *InventoryRepo) CancelReservation(ctx context.Context, roomNumber string, bedNumber int) (model.Bed, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return model.Bed{}, err
	}
	room, i, err := findBed(doc, roomNumber, bedNumber)
	if err != nil {
		return model.Bed{}, err
	}
	bed := doc.Beds[i]
	if bed.Status != model.BedStatusReserved {
		return model.Bed{}, InvalidState(fmt.Sprintf(
			"bed %d in room %s is not reserved", bedNumber, room.Number))
	}
	bed.Status = model.BedStatusFree
	bed.HolderID = ""
	doc.Beds[i] = bed
	if err := r.save(ctx, doc); err != nil {
		return model.Bed{}, err
	}
	return bed, nil
}

// BookBed confirms a move-in: a reserved or free bed becomes occupied
// by the given resident.  The holder reference is cleared and the
// assignment time stamped.  Booking a bed already occupied by the same
// resident is a no-op; occupied by anyone else is a conflict.
func (r *InventoryRepo) BookBed(ctx context.Context, roomNumber string, bedNumber int, residentID string) (model.Bed, error) {
	if residentID == "" {
		return model.Bed{}, Validation("resident reference is required")
	}
	doc, err := r.load(ctx)
	if err != nil {
		return model.Bed{}, err
	}
	room, i, err := findBed(doc, roomNumber, bedNumber)
	if err != nil {
		return model.Bed{}, err
	}
	bed := doc.Beds[i]
	if bed.Status == model.BedStatusOccupied {
		if bed.ResidentID == residentID {
			return bed, nil
		}
		return model.Bed{}, Conflict(fmt.Sprintf(
			"bed %d in room %s is occupied by another resident", bedNumber, room.Number))
	}
	now := time.Now().UTC()
	bed.Status = model.BedStatusOccupied
	bed.ResidentID = residentID
	bed.HolderID = ""
	bed.AssignedAt = &now
	doc.Beds[i] = bed
	if err := r.save(ctx, doc); err != nil {
		return model.Bed{}, err
	}
	return bed, nil
}

// ConfirmReservation is BookBed under its workflow name: it turns a
// hold into a confirmed occupancy.
func (r *InventoryRepo) ConfirmReservation(ctx context.Context, roomNumber string, bedNumber int, residentID string) (model.Bed, error) {
	return r.BookBed(ctx, roomNumber, bedNumber, residentID)
}

// ReleaseBed moves an occupied bed back to free, clearing the resident
// reference and the assignment timestamp.
func (r *InventoryRepo) ReleaseBed(ctx context.Context, roomNumber string, bedNumber int) (model.Bed, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return model.Bed{}, err
	}
	room, i, err := findBed(doc, roomNumber, bedNumber)
	if err != nil {
		return model.Bed{}, err
	}
	bed := doc.Beds[i]
	if bed.Status != model.BedStatusOccupied {
		return model.Bed{}, InvalidState(fmt.Sprintf(
			"bed %d in room %s is not occupied", bedNumber, room.Number))
	}
	bed.Status = model.BedStatusFree
	bed.ResidentID = ""
	bed.AssignedAt = nil
	doc.Beds[i] = bed
	if err := r.save(ctx, doc); err != nil {
		return model.Bed{}, err
	}
	return bed, nil
}

// BedFilter narrows an available-bed search.  Nil fields match
// everything.
type BedFilter struct {
	Floor      *int
	RoomType   *string
	Department *string
}

// AvailableBed pairs a free bed with its room for listings.
type AvailableBed struct {
	Bed  model.Bed  `json:"bed"`
	Room model.Room `json:"room"`
}

// AvailableBeds returns the free beds in rooms that are not under
// maintenance, optionally filtered by floor, room type and department.
func (r *InventoryRepo) AvailableBeds(ctx context.Context, filter BedFilter) ([]AvailableBed, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	roomsByID := make(map[string]model.Room, len(doc.Rooms))
	for _, rm := range doc.Rooms {
		roomsByID[rm.ID] = rm
	}
	out := []AvailableBed{}
	for _, b := range doc.Beds {
		if b.Status != model.BedStatusFree {
			continue
		}
		rm, ok := roomsByID[b.RoomID]
		if !ok || rm.Status == model.RoomStatusMaintenance {
			continue
		}
		if filter.Floor != nil && rm.Floor != *filter.Floor {
			continue
		}
		if filter.RoomType != nil && rm.Type != *filter.RoomType {
			continue
		}
		if filter.Department != nil && rm.Department != *filter.Department {
			continue
		}
		out = append(out, AvailableBed{Bed: b, Room: rm})
	}
	return out, nil
}
