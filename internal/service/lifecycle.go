package service

import (
	"fmt"
	"time"

	"github.com/vilkasoft/carehome-backend/internal/model"
	"github.com/vilkasoft/carehome-backend/internal/repository"
)

// LifecycleService enforces the contract state machine.  Its methods
// mutate the contract in memory only; callers persist the result
// through the contract repo.  Activate either applies everything
// (number, appendixes, pricing, status, timestamp) or leaves the
// contract completely untouched.
type LifecycleService struct {
	Catalog ProductCatalog
}

// NewLifecycleService returns a LifecycleService using the given
// catalog.
func NewLifecycleService(catalog ProductCatalog) *LifecycleService {
	return &LifecycleService{Catalog: catalog}
}

// Activate validates every activation precondition, collecting all
// failures into one ValidationError, and on success turns the draft
// into an active contract: it assigns a contract number (when absent)
// from the numbering snapshot, builds the appendix set, resolves the
// price and stamps the activation time.
//
// The year of the numbering sequence is the year of `now`.
func (s *LifecycleService) Activate(c *model.Contract, existing []model.Contract, now time.Time) error {
	if c.Status != model.ContractStatusDraft {
		return repository.InvalidState("only a draft contract can be activated, status is " + c.Status)
	}

	var problems []string
	res, resKnown := model.ResidenceByKey(c.Residence)
	if !resKnown {
		problems = append(problems, "unknown residence: "+c.Residence)
	}
	if c.StartDate == nil {
		problems = append(problems, "start date is required")
	}
	if c.EndDate == nil && !c.NoEndDate {
		problems = append(problems, "end date is required unless the contract is open-ended")
	}
	if c.ResidentID == "" {
		problems = append(problems, "resident reference is required")
	}
	if c.RoomType == "" && c.RoomNumber == "" {
		problems = append(problems, "a room type or a room assignment is required")
	}

	var product *model.Product
	if resKnown && c.CareLevel != "" && c.RoomType != "" {
		product = s.Catalog.FindProduct(c.CareLevel, c.RoomType, c.Residence, c.TermType())
	}
	if product == nil || product.DailyRate <= 0 {
		problems = append(problems, fmt.Sprintf(
			"no priced product for care level %q, room type %q, residence %q",
			c.CareLevel, c.RoomType, c.Residence))
	}
	if len(problems) > 0 {
		return &repository.ValidationError{Problems: problems}
	}

	number := c.Number
	if number == "" {
		n, err := NextContractNumber(c.Residence, now.UTC().Year(), existing)
		if err != nil {
			return err
		}
		number = n
	}
	appendixes, err := buildAppendixes(number, res)
	if err != nil {
		return err
	}

	// Point of no change-back: from here the contract is mutated.
	activatedAt := now.UTC()
	c.Number = number
	c.Appendixes = appendixes
	c.ProductCode = product.Code
	c.DailyRate = product.DailyRate
	c.DiscountedRate = product.DailyRate
	if c.DiscountPercent > 0 {
		c.DiscountedRate = model.RoundRate(product.DailyRate * (1 - c.DiscountPercent/100))
	}
	c.Status = model.ContractStatusActive
	c.ActivatedAt = &activatedAt
	return nil
}

// buildAppendixes produces the standard appendix set: the base pair
// for every contract, plus the care-level appendix for residences that
// require it.
func buildAppendixes(contractNumber string, res model.Residence) ([]model.Appendix, error) {
	specs := []struct {
		typ  string
		name string
	}{
		{model.AppendixTerms, "Accommodation and care terms"},
		{model.AppendixInventory, "Room inventory handover"},
	}
	if res.CareLevelAppendix {
		specs = append(specs, struct {
			typ  string
			name string
		}{model.AppendixCareLevel, "Care level assessment"})
	}
	out := make([]model.Appendix, 0, len(specs))
	for i, sp := range specs {
		num, err := AppendixNumber(contractNumber, i+1)
		if err != nil {
			return nil, err
		}
		out = append(out, model.Appendix{Seq: i + 1, Type: sp.typ, Number: num, Name: sp.name})
	}
	return out, nil
}

// Cancel moves a draft or active contract to the terminal cancelled
// state.
func (s *LifecycleService) Cancel(c *model.Contract, now time.Time) error {
	if c.Status != model.ContractStatusDraft && c.Status != model.ContractStatusActive {
		return repository.InvalidState("cannot cancel a contract in status " + c.Status)
	}
	t := now.UTC()
	c.Status = model.ContractStatusCancelled
	c.CancelledAt = &t
	return nil
}

// Complete moves an active contract to the terminal completed state,
// used when a fixed-term contract runs out normally.
func (s *LifecycleService) Complete(c *model.Contract, now time.Time) error {
	if c.Status != model.ContractStatusActive {
		return repository.InvalidState("cannot complete a contract in status " + c.Status)
	}
	c.Status = model.ContractStatusCompleted
	return nil
}

// Terminate ends an active contract early, recording the termination
// date and reason.  Whether the bound bed is released is a separate
// operational decision; Terminate itself never touches the inventory.
func (s *LifecycleService) Terminate(c *model.Contract, date *time.Time, reason string, now time.Time) error {
	if c.Status != model.ContractStatusActive {
		return repository.InvalidState("cannot terminate a contract in status " + c.Status)
	}
	if date == nil {
		return repository.Validation("termination date is required")
	}
	t := now.UTC()
	c.Status = model.ContractStatusTerminated
	c.TerminationDate = date
	c.TerminationReason = reason
	c.TerminatedAt = &t
	return nil
}
