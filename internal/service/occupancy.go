package service

import (
	"context"
	"math"
	"strconv"

	"github.com/vilkasoft/carehome-backend/internal/model"
	"github.com/vilkasoft/carehome-backend/internal/repository"
)

// RoomOccupancy joins a room with its beds and per-status counts.
type RoomOccupancy struct {
	Room     model.Room  `json:"room"`
	Beds     []model.Bed `json:"beds"`
	Free     int         `json:"free"`
	Reserved int         `json:"reserved"`
	Occupied int         `json:"occupied"`
}

// OccupancySlice is one bucket of occupancy totals.  The rate is
// round(occupied/total*100) and defined as 0 for an empty bucket.
type OccupancySlice struct {
	TotalBeds     int `json:"total_beds"`
	FreeBeds      int `json:"free_beds"`
	ReservedBeds  int `json:"reserved_beds"`
	OccupiedBeds  int `json:"occupied_beds"`
	OccupancyRate int `json:"occupancy_rate"`
}

// OccupancyStats aggregates the whole facility and slices it by floor,
// room type and department.
type OccupancyStats struct {
	OccupancySlice
	ByFloor      map[string]OccupancySlice `json:"by_floor"`
	ByRoomType   map[string]OccupancySlice `json:"by_room_type"`
	ByDepartment map[string]OccupancySlice `json:"by_department"`
}

// StatsFilter narrows the stats to matching rooms before aggregating.
// Nil fields match everything.
type StatsFilter struct {
	Floor      *int
	RoomType   *string
	Department *string
}

// OccupancyService derives occupancy views from the inventory.  It is
// read-only: every result is recomputed from the current rooms and
// beds, never persisted.
type OccupancyService struct {
	Inventory *repository.InventoryRepo
}

// NewOccupancyService returns an OccupancyService over the given
// inventory.
func NewOccupancyService(inv *repository.InventoryRepo) *OccupancyService {
	return &OccupancyService{Inventory: inv}
}

// RoomsWithOccupancy returns every room joined with its beds and
// counts.
func (s *OccupancyService) RoomsWithOccupancy(ctx context.Context) ([]RoomOccupancy, error) {
	rooms, err := s.Inventory.GetAllRooms(ctx)
	if err != nil {
		return nil, err
	}
	beds, err := s.Inventory.GetAllBeds(ctx)
	if err != nil {
		return nil, err
	}
	return JoinRoomsWithOccupancy(rooms, beds), nil
}

// Stats aggregates occupancy for rooms matching the filter.
func (s *OccupancyService) Stats(ctx context.Context, filter StatsFilter) (OccupancyStats, error) {
	rooms, err := s.Inventory.GetAllRooms(ctx)
	if err != nil {
		return OccupancyStats{}, err
	}
	beds, err := s.Inventory.GetAllBeds(ctx)
	if err != nil {
		return OccupancyStats{}, err
	}
	return ComputeOccupancyStats(rooms, beds, filter), nil
}

// JoinRoomsWithOccupancy is the pure join behind RoomsWithOccupancy.
func JoinRoomsWithOccupancy(rooms []model.Room, beds []model.Bed) []RoomOccupancy {
	byRoom := make(map[string][]model.Bed, len(rooms))
	for _, b := range beds {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}
	out := make([]RoomOccupancy, 0, len(rooms))
	for _, rm := range rooms {
		ro := RoomOccupancy{Room: rm, Beds: byRoom[rm.ID]}
		for _, b := range ro.Beds {
			switch b.Status {
			case model.BedStatusFree:
				ro.Free++
			case model.BedStatusReserved:
				ro.Reserved++
			case model.BedStatusOccupied:
				ro.Occupied++
			}
		}
		out = append(out, ro)
	}
	return out
}

// ComputeOccupancyStats is the pure aggregation behind Stats.
func ComputeOccupancyStats(rooms []model.Room, beds []model.Bed, filter StatsFilter) OccupancyStats {
	stats := OccupancyStats{
		ByFloor:      map[string]OccupancySlice{},
		ByRoomType:   map[string]OccupancySlice{},
		ByDepartment: map[string]OccupancySlice{},
	}
	roomsByID := make(map[string]model.Room, len(rooms))
	for _, rm := range rooms {
		if filter.Floor != nil && rm.Floor != *filter.Floor {
			continue
		}
		if filter.RoomType != nil && rm.Type != *filter.RoomType {
			continue
		}
		if filter.Department != nil && rm.Department != *filter.Department {
			continue
		}
		roomsByID[rm.ID] = rm
	}
	for _, b := range beds {
		rm, ok := roomsByID[b.RoomID]
		if !ok {
			continue
		}
		stats.OccupancySlice = countBed(stats.OccupancySlice, b)
		floorKey := strconv.Itoa(rm.Floor)
		stats.ByFloor[floorKey] = countBed(stats.ByFloor[floorKey], b)
		stats.ByRoomType[rm.Type] = countBed(stats.ByRoomType[rm.Type], b)
		stats.ByDepartment[rm.Department] = countBed(stats.ByDepartment[rm.Department], b)
	}
	stats.OccupancySlice = withRate(stats.OccupancySlice)
	for k, v := range stats.ByFloor {
		stats.ByFloor[k] = withRate(v)
	}
	for k, v := range stats.ByRoomType {
		stats.ByRoomType[k] = withRate(v)
	}
	for k, v := range stats.ByDepartment {
		stats.ByDepartment[k] = withRate(v)
	}
	return stats
}

func countBed(s OccupancySlice, b model.Bed) OccupancySlice {
	s.TotalBeds++
	switch b.Status {
	case model.BedStatusFree:
		s.FreeBeds++
	case model.BedStatusReserved:
		s.ReservedBeds++
	case model.BedStatusOccupied:
		s.OccupiedBeds++
	}
	return s
}

// withRate fills in the occupancy rate; an empty bucket has rate 0
// rather than a division by zero.
func withRate(s OccupancySlice) OccupancySlice {
	if s.TotalBeds == 0 {
		s.OccupancyRate = 0
		return s
	}
	s.OccupancyRate = int(math.Round(float64(s.OccupiedBeds) / float64(s.TotalBeds) * 100))
	return s
}
