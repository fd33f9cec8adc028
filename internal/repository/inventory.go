package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vilkasoft/carehome-backend/internal/model"
	"github.com/vilkasoft/carehome-backend/internal/store"
)

// inventoryDocument is the rooms+beds aggregate as persisted.  The
// whole document is rewritten on every mutation.
type inventoryDocument struct {
	Rooms []model.Room `json:"rooms"`
	Beds  []model.Bed  `json:"beds"`
}

// InventoryRepo owns the rooms+beds aggregate.  It is the only
// sanctioned mutation point for that document; the bed state machine
// in reservation.go operates through the same repo.
type InventoryRepo struct {
	store store.DocumentStore
}

// NewInventoryRepo returns an InventoryRepo bound to the given store.
func NewInventoryRepo(s store.DocumentStore) *InventoryRepo {
	return &InventoryRepo{store: s}
}

func (r *InventoryRepo) load(ctx context.Context) (*inventoryDocument, error) {
	body, err := r.store.Load(ctx, store.DocInventory)
	if errors.Is(err, store.ErrNotFound) {
		return &inventoryDocument{}, nil
	}
	if err != nil {
		return nil, err
	}
	var doc inventoryDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode inventory document: %w", err)
	}
	return &doc, nil
}

func (r *InventoryRepo) save(ctx context.Context, doc *inventoryDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode inventory document: %w", err)
	}
	return r.store.Save(ctx, store.DocInventory, body)
}

// RoomSpec describes a room to create.  Status defaults to AVAILABLE
// when empty.
type RoomSpec struct {
	Number    string   `json:"number"`
	Floor     int      `json:"floor"`
	Type      string   `json:"type"`
	Status    string   `json:"status,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
}

// RoomPatch describes a partial room update.  Nil fields are left
// unchanged.  Number is present only to reject attempts to change it.
type RoomPatch struct {
	Number    *string  `json:"number,omitempty"`
	Floor     *int     `json:"floor,omitempty"`
	Type      *string  `json:"type,omitempty"`
	Status    *string  `json:"status,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
}

// CreateRoom validates the spec, creates the room and generates its
// beds, all free, matching the type's bed count.  The department is
// derived from the floor.
func (r *InventoryRepo) CreateRoom(ctx context.Context, spec RoomSpec) (model.Room, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return model.Room{}, err
	}

	var problems []string
	number := strings.TrimSpace(spec.Number)
	if number == "" {
		problems = append(problems, "room number is required")
	}
	if !model.ValidRoomType(spec.Type) {
		problems = append(problems, "unknown room type: "+spec.Type)
	}
	status := spec.Status
	if status == "" {
		status = model.RoomStatusAvailable
	}
	if status != model.RoomStatusAvailable && status != model.RoomStatusMaintenance {
		problems = append(problems, "unknown room status: "+status)
	}
	for _, room := range doc.Rooms {
		if room.Number == number {
			problems = append(problems, "room number already in use: "+number)
			break
		}
	}
	if len(problems) > 0 {
		return model.Room{}, &ValidationError{Problems: problems}
	}

	now := time.Now().UTC()
	room := model.Room{
		ID:         NewID(),
		Number:     number,
		Floor:      spec.Floor,
		Department: model.DepartmentForFloor(spec.Floor),
		Type:       spec.Type,
		Status:     status,
		Amenities:  spec.Amenities,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	doc.Rooms = append(doc.Rooms, room)
	doc.Beds = append(doc.Beds, newBeds(room.ID, 1, model.BedCountForType(spec.Type))...)

	if err := r.save(ctx, doc); err != nil {
		return model.Room{}, err
	}
	return room, nil
}

// newBeds builds free beds numbered from..to (inclusive) for a room.
func newBeds(roomID string, from, to int) []model.Bed {
	beds := make([]model.Bed, 0, to-from+1)
	for n := from; n <= to; n++ {
		beds = append(beds, model.Bed{
			ID:     NewID(),
			RoomID: roomID,
			Number: n,
			Status: model.BedStatusFree,
		})
	}
	return beds
}

// UpdateRoom applies a patch to an existing room.  The room number is
// immutable; changing the type adjusts the bed set, but shrinking is
// refused unless every bed beyond the new count is free.
func (r *InventoryRepo) UpdateRoom(ctx context.Context, id string, patch RoomPatch) (model.Room, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return model.Room{}, err
	}
	idx := -1
	for i := range doc.Rooms {
		if doc.Rooms[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Room{}, ErrRoomNotFound
	}
	room := doc.Rooms[idx]

	if patch.Number != nil && strings.TrimSpace(*patch.Number) != room.Number {
		return model.Room{}, Validation("room number is immutable")
	}
	if patch.Status != nil {
		if *patch.Status != model.RoomStatusAvailable && *patch.Status != model.RoomStatusMaintenance {
			return model.Room{}, Validation("unknown room status: " + *patch.Status)
		}
		room.Status = *patch.Status
	}
	if patch.Floor != nil {
		room.Floor = *patch.Floor
		room.Department = model.DepartmentForFloor(room.Floor)
	}
	if patch.Amenities != nil {
		room.Amenities = patch.Amenities
	}
	if patch.Type != nil && *patch.Type != room.Type {
		newCount := model.BedCountForType(*patch.Type)
		if newCount == 0 {
			return model.Room{}, Validation("unknown room type: " + *patch.Type)
		}
		beds := bedsOfRoom(doc, room.ID)
		if newCount < len(beds) {
			// every bed beyond the new count must be free
			for _, b := range beds {
				if b.Number > newCount && b.Status != model.BedStatusFree {
					return model.Room{}, Conflict(fmt.Sprintf(
						"cannot shrink room %s: bed %d is %s", room.Number, b.Number, b.Status))
				}
			}
			kept := doc.Beds[:0]
			for _, b := range doc.Beds {
				if b.RoomID == room.ID && b.Number > newCount {
					continue
				}
				kept = append(kept, b)
			}
			doc.Beds = kept
		} else if newCount > len(beds) {
			doc.Beds = append(doc.Beds, newBeds(room.ID, len(beds)+1, newCount)...)
		}
		room.Type = *patch.Type
	}

	room.UpdatedAt = time.Now().UTC()
	doc.Rooms[idx] = room
	if err := r.save(ctx, doc); err != nil {
		return model.Room{}, err
	}
	return room, nil
}

// DeleteRoom removes a room and cascades to its beds.  It refuses to
// delete a room while any of its beds is occupied or reserved.
func (r *InventoryRepo) DeleteRoom(ctx context.Context, id string) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i := range doc.Rooms {
		if doc.Rooms[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrRoomNotFound
	}
	room := doc.Rooms[idx]
	for _, b := range bedsOfRoom(doc, room.ID) {
		if b.Status != model.BedStatusFree {
			return Conflict(fmt.Sprintf(
				"cannot delete room %s: bed %d is %s", room.Number, b.Number, b.Status))
		}
	}

	doc.Rooms = append(doc.Rooms[:idx], doc.Rooms[idx+1:]...)
	kept := doc.Beds[:0]
	for _, b := range doc.Beds {
		if b.RoomID != room.ID {
			kept = append(kept, b)
		}
	}
	doc.Beds = kept
	return r.save(ctx, doc)
}

// defaultLayout is the seed inventory for a fresh installation.
var defaultLayout = []RoomSpec{
	{Number: "101", Floor: 1, Type: model.RoomTypeSingle},
	{Number: "102", Floor: 1, Type: model.RoomTypeDouble},
	{Number: "103", Floor: 1, Type: model.RoomTypeDouble},
	{Number: "104", Floor: 1, Type: model.RoomTypeSingle, Amenities: []string{"balcony"}},
	{Number: "201", Floor: 2, Type: model.RoomTypeDouble},
	{Number: "202", Floor: 2, Type: model.RoomTypeDouble},
	{Number: "203", Floor: 2, Type: model.RoomTypeSingle},
	{Number: "301", Floor: 3, Type: model.RoomTypeSingle},
	{Number: "302", Floor: 3, Type: model.RoomTypeDouble},
	{Number: "401", Floor: 4, Type: model.RoomTypeSingle},
	{Number: "402", Floor: 4, Type: model.RoomTypeSingle},
}

// InitializeRoomData seeds the default layout.  It is a no-op when the
// document already holds any room, so calling it on every startup is
// safe and never overwrites committed state.
func (r *InventoryRepo) InitializeRoomData(ctx context.Context) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	if len(doc.Rooms) > 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, spec := range defaultLayout {
		room := model.Room{
			ID:         NewID(),
			Number:     spec.Number,
			Floor:      spec.Floor,
			Department: model.DepartmentForFloor(spec.Floor),
			Type:       spec.Type,
			Status:     model.RoomStatusAvailable,
			Amenities:  spec.Amenities,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		doc.Rooms = append(doc.Rooms, room)
		doc.Beds = append(doc.Beds, newBeds(room.ID, 1, model.BedCountForType(spec.Type))...)
	}
	return r.save(ctx, doc)
}

// GetAllRooms returns every room.
func (r *InventoryRepo) GetAllRooms(ctx context.Context) ([]model.Room, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Rooms, nil
}

// GetAllBeds returns every bed.
func (r *InventoryRepo) GetAllBeds(ctx context.Context) ([]model.Bed, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Beds, nil
}

// RoomByNumber returns the room with the given display number.
func (r *InventoryRepo) RoomByNumber(ctx context.Context, number string) (model.Room, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return model.Room{}, err
	}
	for _, room := range doc.Rooms {
		if room.Number == number {
			return room, nil
		}
	}
	return model.Room{}, ErrRoomNotFound
}

// bedsOfRoom returns the beds belonging to a room, in bed-number order
// as stored.
func bedsOfRoom(doc *inventoryDocument, roomID string) []model.Bed {
	var beds []model.Bed
	for _, b := range doc.Beds {
		if b.RoomID == roomID {
			beds = append(beds, b)
		}
	}
	return beds
}
