package model

import "time"

// Lead identifies a prospective resident before move-in.  Leads hold a
// tentative bed reservation and become residents when their contract
// is activated.
type Lead struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// Resident is a person living in the facility.  The record is created
// by the activation workflow once a contract is active, bound to the
// room and bed the contract assigned.
type Resident struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	LeadID     string    `json:"lead_id,omitempty"`
	ContractID string    `json:"contract_id,omitempty"`
	RoomID     string    `json:"room_id,omitempty"`
	BedNumber  int       `json:"bed_number,omitempty"`
	MovedInAt  time.Time `json:"moved_in_at"`
}
