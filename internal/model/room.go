package model

import "time"

// Room statuses.  A room under maintenance keeps its beds but is
// excluded from available-bed searches.
const (
	RoomStatusAvailable   = "AVAILABLE"
	RoomStatusMaintenance = "MAINTENANCE"
)

// Room types.  Each type carries a fixed number of beds.
const (
	RoomTypeSingle = "SINGLE"
	RoomTypeDouble = "DOUBLE"
)

// Departments group floors by care policy.  The memory-care floor is
// the secured part of the building.
const (
	DeptGeneral    = "GENERAL"
	DeptNursing    = "NURSING"
	DeptMemoryCare = "MEMORY_CARE"
)

// departmentByFloor is the fixed house policy mapping floors to
// departments.  Floors outside the map fall back to the general
// department.
var departmentByFloor = map[int]string{
	1: DeptGeneral,
	2: DeptGeneral,
	3: DeptNursing,
	4: DeptMemoryCare,
}

// DepartmentForFloor derives the department a room belongs to from its
// floor.  The mapping is policy, not data: it is never stored apart
// from the room so it cannot drift.
func DepartmentForFloor(floor int) string {
	if d, ok := departmentByFloor[floor]; ok {
		return d
	}
	return DeptGeneral
}

// BedCountForType returns the number of beds a room of the given type
// must hold, or 0 for an unknown type.
func BedCountForType(roomType string) int {
	switch roomType {
	case RoomTypeSingle:
		return 1
	case RoomTypeDouble:
		return 2
	}
	return 0
}

// ValidRoomType reports whether t is a known room type.
func ValidRoomType(t string) bool { return BedCountForType(t) > 0 }

// Room describes a physical unit of the facility.  Rooms are uniquely
// identified by their display number, which is immutable once the room
// has been created.  The department is derived from the floor by
// DepartmentForFloor and written back on every floor change.
//
// Fields:
//  ID         – primary identifier.
//  Number     – display number shown on the door (unique, immutable).
//  Floor      – floor the room is on.
//  Department – policy grouping derived from the floor.
//  Type       – SINGLE or DOUBLE; fixes the bed count.
//  Status     – AVAILABLE or MAINTENANCE.
//  Amenities  – free-form amenity tags.
type Room struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	Floor      int       `json:"floor"`
	Department string    `json:"department"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	Amenities  []string  `json:"amenities,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
