// Package queue defines message payloads exchanged over the message
// broker, the publisher used by the activation workflow and the
// background consumer that writes the contract log.
package queue

// ContractActivatedEvent is published once the activation workflow has
// committed the numbered, active contract.  It carries enough for
// downstream consumers to log or notify without querying the primary
// store.  Bed binding and resident creation may still be pending when
// the event is emitted; Pending lists the outstanding steps.
type ContractActivatedEvent struct {
	ContractID  string   `json:"contract_id"`
	Number      string   `json:"number"`
	Residence   string   `json:"residence"`
	ResidentRef string   `json:"resident_ref"`
	RoomNumber  string   `json:"room_number,omitempty"`
	BedNumber   int      `json:"bed_number,omitempty"`
	DailyRate   float64  `json:"daily_rate"`
	Pending     []string `json:"pending,omitempty"`
	ActivatedAt string   `json:"activated_at"`
}
