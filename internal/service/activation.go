package service

import (
	"context"
	"log"
	"time"

	"github.com/vilkasoft/carehome-backend/internal/model"
	"github.com/vilkasoft/carehome-backend/internal/queue"
	"github.com/vilkasoft/carehome-backend/internal/repository"
)

// Pending step names reported on partial success.
const (
	StepRoomAssignment   = "room_assignment"
	StepResidentCreation = "resident_creation"
)

// ResidentRegistry is the external registry the workflow creates
// residents in.  The repository implementation satisfies it; tests
// substitute failing fakes.
type ResidentRegistry interface {
	CreateFromLead(ctx context.Context, lead model.Lead, roomID string, bedNumber int, contractID string) (model.Resident, error)
	GetByID(ctx context.Context, id string) (model.Resident, error)
}

// EventPublisher publishes workflow events.  It matches
// queue.PublishContractActivated and may be nil to disable publishing.
type EventPublisher func(ctx context.Context, event queue.ContractActivatedEvent) error

// ActivationResult reports the outcome of the activation workflow.
// Partial marks the partial-success case: the contract is active and
// numbered, but the steps listed in Pending did not complete and need
// a manual follow-up.  Partial success is a result, not an error.
type ActivationResult struct {
	Contract model.Contract  `json:"contract"`
	Resident *model.Resident `json:"resident,omitempty"`
	Bed      *model.Bed      `json:"bed,omitempty"`
	Partial  bool            `json:"partial"`
	Pending  []string        `json:"pending,omitempty"`
	Notes    []string        `json:"notes,omitempty"`
}

// ActivationWorkflow turns a draft contract into an active one with a
// bound bed and a created resident.  The three aggregates involved are
// independently persisted and there is no cross-document transaction,
// so the workflow is an ordered step list that advances and reports
// rather than rolling back:
//
//  1. validate activation preconditions; on failure, abort with the
//     full error list and no side effects;
//  2. assign number + appendixes and persist the contract as active,
//     the point of no return: the number is never taken back;
//  3. bind the selected bed, if any; a bed lost to a concurrent
//     change leaves the contract active with room assignment pending;
//  4. create the resident record; a registry failure leaves bed and
//     contract as they are, with resident creation pending.
type ActivationWorkflow struct {
	Contracts *repository.ContractRepo
	Inventory *repository.InventoryRepo
	Lifecycle *LifecycleService
	Registry  ResidentRegistry
	Publish   EventPublisher
	Now       func() time.Time
}

// NewActivationWorkflow wires the workflow.  Publish may be nil.
func NewActivationWorkflow(contracts *repository.ContractRepo, inventory *repository.InventoryRepo, lifecycle *LifecycleService, registry ResidentRegistry, publish EventPublisher) *ActivationWorkflow {
	return &ActivationWorkflow{
		Contracts: contracts,
		Inventory: inventory,
		Lifecycle: lifecycle,
		Registry:  registry,
		Publish:   publish,
		Now:       time.Now,
	}
}

// Activate runs the workflow for the given draft contract.  The lead
// describes the person moving in; its ID defaults to the contract's
// resident reference when empty.
func (w *ActivationWorkflow) Activate(ctx context.Context, contractID string, lead model.Lead) (ActivationResult, error) {
	c, err := w.Contracts.GetByID(ctx, contractID)
	if err != nil {
		return ActivationResult{}, err
	}

	// A room assignment without an explicit room type takes the type
	// from the assigned room, so pricing can resolve.
	if c.RoomType == "" && c.RoomNumber != "" {
		if room, err := w.Inventory.RoomByNumber(ctx, c.RoomNumber); err == nil {
			c.RoomType = room.Type
		}
	}

	// Step 1+2a: validate and activate in memory.  Any validation
	// failure returns here with nothing written.
	existing, err := w.Contracts.List(ctx)
	if err != nil {
		return ActivationResult{}, err
	}
	if err := w.Lifecycle.Activate(&c, existing, w.Now()); err != nil {
		return ActivationResult{}, err
	}

	// Step 2b: persist the active, numbered contract.  This is the
	// point of no return: from here on failures degrade to partial
	// success, never to a rollback, because the assigned number must
	// not be reused.
	if err := w.Contracts.Update(ctx, c); err != nil {
		return ActivationResult{}, err
	}

	result := ActivationResult{Contract: c}

	// Step 3: bind the selected bed.
	var boundRoomID string
	if c.RoomNumber != "" && c.BedNumber > 0 {
		bed, err := w.Inventory.BookBed(ctx, c.RoomNumber, c.BedNumber, c.ResidentID)
		if err != nil {
			result.Partial = true
			result.Pending = append(result.Pending, StepRoomAssignment)
			result.Notes = append(result.Notes, "bed could not be bound: "+err.Error())
		} else {
			result.Bed = &bed
			boundRoomID = bed.RoomID
		}
	}

	// Step 4: create the resident against whatever was bound.
	if lead.ID == "" {
		lead.ID = c.ResidentID
	}
	bedNumber := 0
	if boundRoomID != "" {
		bedNumber = c.BedNumber
	}
	resident, err := w.Registry.CreateFromLead(ctx, lead, boundRoomID, bedNumber, c.ID)
	if err != nil {
		result.Partial = true
		result.Pending = append(result.Pending, StepResidentCreation)
		result.Notes = append(result.Notes, "resident could not be created: "+err.Error())
	} else {
		result.Resident = &resident
	}

	w.publishActivated(ctx, result)
	return result, nil
}

// publishActivated emits the contract.activated event.  Publishing is
// best effort; failures are logged by the publisher and ignored here.
func (w *ActivationWorkflow) publishActivated(ctx context.Context, result ActivationResult) {
	if w.Publish == nil {
		return
	}
	c := result.Contract
	activatedAt := ""
	if c.ActivatedAt != nil {
		activatedAt = c.ActivatedAt.Format(time.RFC3339)
	}
	ev := queue.ContractActivatedEvent{
		ContractID:  c.ID,
		Number:      c.Number,
		Residence:   c.Residence,
		ResidentRef: c.ResidentID,
		DailyRate:   c.DiscountedRate,
		Pending:     result.Pending,
		ActivatedAt: activatedAt,
	}
	if result.Bed != nil {
		ev.RoomNumber = c.RoomNumber
		ev.BedNumber = c.BedNumber
	}
	if err := w.Publish(ctx, ev); err != nil {
		log.Printf("activation: publish contract.activated failed for %s: %v", c.Number, err)
	}
}
