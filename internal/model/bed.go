package model

import "time"

// Bed statuses.  A bed moves FREE -> RESERVED -> OCCUPIED -> FREE; an
// occupied bed must be released back to FREE before it can be reserved
// again.
const (
	BedStatusFree     = "FREE"
	BedStatusReserved = "RESERVED"
	BedStatusOccupied = "OCCUPIED"
)

// Bed is the smallest assignable unit of residency.  A bed belongs to
// exactly one room for its whole lifetime and is numbered 1-based
// within that room.
//
// Exactly one of ResidentID/HolderID may be set at a time, matching
// the status: OCCUPIED carries a resident reference, RESERVED carries
// the reference of whoever holds the tentative reservation, FREE
// carries neither.
//
// Fields:
//  ID         – primary identifier.
//  RoomID     – owning room.
//  Number     – bed number within the room (1-based).
//  Status     – FREE, RESERVED or OCCUPIED.
//  ResidentID – resident living in the bed (set iff OCCUPIED).
//  HolderID   – reservation holder (set iff RESERVED).
//  AssignedAt – when the current resident moved in (set iff OCCUPIED).
type Bed struct {
	ID         string     `json:"id"`
	RoomID     string     `json:"room_id"`
	Number     int        `json:"number"`
	Status     string     `json:"status"`
	ResidentID string     `json:"resident_id,omitempty"`
	HolderID   string     `json:"holder_id,omitempty"`
	AssignedAt *time.Time `json:"assigned_at,omitempty"`
}
