package model

import (
	"math"
	"time"
)

// Contract statuses.  DRAFT is the only non-terminal pre-activation
// state; COMPLETED, CANCELLED and TERMINATED are all terminal.
const (
	ContractStatusDraft      = "DRAFT"
	ContractStatusActive     = "ACTIVE"
	ContractStatusCompleted  = "COMPLETED"
	ContractStatusCancelled  = "CANCELLED"
	ContractStatusTerminated = "TERMINATED"
)

// Term types derived from the contract date range.
const (
	TermLong  = "LONG_TERM"
	TermShort = "SHORT_TERM"
)

// Appendix types produced at activation.
const (
	AppendixTerms     = "TERMS"
	AppendixInventory = "INVENTORY"
	AppendixCareLevel = "CARE_LEVEL"
)

// Appendix is a named sub-document attached to a contract when it is
// activated.  Its number is derived from the contract number and its
// 1-based sequence position, e.g. "AM-2988-1/2026".
type Appendix struct {
	Seq    int    `json:"seq"`
	Type   string `json:"type"`
	Number string `json:"number"`
	Name   string `json:"name"`
}

// Contract binds a resident to a bed at a price for a period.  Number
// stays empty while the contract is a draft and is assigned exactly
// once during activation; once assigned it is never reused, even when
// a later activation step fails.
//
// TermType is deliberately not a field: it is recomputed from the date
// range on demand so it cannot drift when dates change.
type Contract struct {
	ID        string `json:"id"`
	Number    string `json:"number,omitempty"`
	Status    string `json:"status"`
	Residence string `json:"residence"`

	ResidentID string `json:"resident_id,omitempty"` // resident or lead reference
	ClientID   string `json:"client_id,omitempty"`   // paying client, when not the resident

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	NoEndDate bool       `json:"no_end_date,omitempty"`

	RoomNumber string `json:"room_number,omitempty"`
	BedNumber  int    `json:"bed_number,omitempty"`
	RoomType   string `json:"room_type,omitempty"`
	CareLevel  string `json:"care_level,omitempty"`

	ProductCode     string  `json:"product_code,omitempty"`
	DailyRate       float64 `json:"daily_rate,omitempty"`
	DiscountPercent float64 `json:"discount_percent,omitempty"`
	DiscountedRate  float64 `json:"discounted_rate,omitempty"`

	Appendixes []Appendix `json:"appendixes,omitempty"`

	TerminationDate   *time.Time `json:"termination_date,omitempty"`
	TerminationReason string     `json:"termination_reason,omitempty"`

	CreatedAt    time.Time  `json:"created_at"`
	ActivatedAt  *time.Time `json:"activated_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	TerminatedAt *time.Time `json:"terminated_at,omitempty"`
}

// TermType classifies the contract by its date range: open-ended
// contracts and ranges longer than three months are long-term,
// everything else is short-term.  Contracts with no start date yet
// default to long-term.
func (c *Contract) TermType() string {
	if c.NoEndDate || c.EndDate == nil || c.StartDate == nil {
		return TermLong
	}
	if c.EndDate.After(c.StartDate.AddDate(0, 3, 0)) {
		return TermLong
	}
	return TermShort
}

// Terminal reports whether the contract is in a terminal state.
func (c *Contract) Terminal() bool {
	switch c.Status {
	case ContractStatusCompleted, ContractStatusCancelled, ContractStatusTerminated:
		return true
	}
	return false
}

// RoundRate rounds a daily rate to two decimals.
func RoundRate(v float64) float64 {
	return math.Round(v*100) / 100
}
