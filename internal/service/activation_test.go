package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vilkasoft/carehome-backend/internal/model"
	"github.com/vilkasoft/carehome-backend/internal/queue"
	"github.com/vilkasoft/carehome-backend/internal/repository"
	"github.com/vilkasoft/carehome-backend/internal/store"
)

// failingRegistry rejects every resident creation, standing in for an
// unreachable registry.
type failingRegistry struct{}

func (failingRegistry) CreateFromLead(context.Context, model.Lead, string, int, string) (model.Resident, error) {
	return model.Resident{}, errors.New("registry unavailable")
}

func (failingRegistry) GetByID(context.Context, string) (model.Resident, error) {
	return model.Resident{}, repository.ErrResidentNotFound
}

type workflowFixture struct {
	contracts *repository.ContractRepo
	inventory *repository.InventoryRepo
	residents *repository.ResidentRepo
	workflow  *ActivationWorkflow
	events    *[]queue.ContractActivatedEvent
}

func newWorkflowFixture(t *testing.T) workflowFixture {
	t.Helper()
	s := store.NewMemoryStore()
	contracts := repository.NewContractRepo(s)
	inventory := repository.NewInventoryRepo(s)
	residents := repository.NewResidentRepo(s)
	require.NoError(t, inventory.InitializeRoomData(context.Background()))

	events := &[]queue.ContractActivatedEvent{}
	publish := func(_ context.Context, ev queue.ContractActivatedEvent) error {
		*events = append(*events, ev)
		return nil
	}
	w := NewActivationWorkflow(contracts, inventory, NewLifecycleService(NewStaticCatalog()), residents, publish)
	w.Now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return workflowFixture{contracts: contracts, inventory: inventory, residents: residents, workflow: w, events: events}
}

func (f workflowFixture) draft(t *testing.T, d repository.ContractDraft) model.Contract {
	t.Helper()
	c, err := f.contracts.CreateDraft(context.Background(), d)
	require.NoError(t, err)
	return c
}

func fullDraft() repository.ContractDraft {
	return repository.ContractDraft{
		Residence:  model.ResidenceMelodija,
		ResidentID: "lead-1",
		StartDate:  date(2026, 3, 1),
		NoEndDate:  true,
		RoomNumber: "101",
		BedNumber:  1,
		CareLevel:  CareLevel1,
	}
}

func TestActivationHappyPath(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	c := f.draft(t, fullDraft())

	result, err := f.workflow.Activate(ctx, c.ID, model.Lead{FullName: "Ona Petrauskienė"})
	require.NoError(t, err)
	require.False(t, result.Partial)
	require.Empty(t, result.Pending)
	require.Equal(t, model.ContractStatusActive, result.Contract.Status)
	require.Equal(t, "AM-2988/2026", result.Contract.Number)
	// Room type was filled in from the assigned room.
	require.Equal(t, model.RoomTypeSingle, result.Contract.RoomType)

	require.NotNil(t, result.Bed)
	require.Equal(t, model.BedStatusOccupied, result.Bed.Status)
	require.Equal(t, "lead-1", result.Bed.ResidentID)

	require.NotNil(t, result.Resident)
	require.Equal(t, "Ona Petrauskienė", result.Resident.FullName)
	require.Equal(t, result.Bed.RoomID, result.Resident.RoomID)
	require.Equal(t, 1, result.Resident.BedNumber)
	require.Equal(t, c.ID, result.Resident.ContractID)

	// The persisted contract matches the result.
	stored, err := f.contracts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, result.Contract, stored)

	require.Len(t, *f.events, 1)
	ev := (*f.events)[0]
	require.Equal(t, "AM-2988/2026", ev.Number)
	require.Equal(t, "101", ev.RoomNumber)
	require.Empty(t, ev.Pending)
}

func TestActivationValidationFailureHasNoSideEffects(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	c := f.draft(t, repository.ContractDraft{Residence: model.ResidenceMelodija})

	_, err := f.workflow.Activate(ctx, c.ID, model.Lead{FullName: "Ona Petrauskienė"})
	var verr *repository.ValidationError
	require.ErrorAs(t, err, &verr)

	stored, err := f.contracts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, model.ContractStatusDraft, stored.Status)
	require.Empty(t, stored.Number)
	require.Empty(t, *f.events)
}

func TestActivationBedLostToConcurrentChange(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	c := f.draft(t, fullDraft())

	// Someone else takes the bed after the draft was written but before
	// activation runs.
	_, err := f.inventory.BookBed(ctx, "101", 1, "res-other")
	require.NoError(t, err)

	result, err := f.workflow.Activate(ctx, c.ID, model.Lead{FullName: "Ona Petrauskienė"})
	require.NoError(t, err, "a lost bed degrades to partial success, not an error")
	require.True(t, result.Partial)
	require.Equal(t, []string{StepRoomAssignment}, result.Pending)
	require.Nil(t, result.Bed)

	// The contract stays active and keeps its number.
	stored, err := f.contracts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, model.ContractStatusActive, stored.Status)
	require.Equal(t, "AM-2988/2026", stored.Number)

	// The resident exists, waiting for a room.
	require.NotNil(t, result.Resident)
	require.Empty(t, result.Resident.RoomID)
	require.Zero(t, result.Resident.BedNumber)

	// The other resident keeps the bed.
	beds, err := f.inventory.GetAllBeds(ctx)
	require.NoError(t, err)
	for _, b := range beds {
		if b.ResidentID != "" {
			require.Equal(t, "res-other", b.ResidentID)
		}
	}

	require.Len(t, *f.events, 1)
	require.Equal(t, []string{StepRoomAssignment}, (*f.events)[0].Pending)
}

func TestActivationRegistryFailure(t *testing.T) {
	f := newWorkflowFixture(t)
	f.workflow.Registry = failingRegistry{}
	ctx := context.Background()
	c := f.draft(t, fullDraft())

	result, err := f.workflow.Activate(ctx, c.ID, model.Lead{FullName: "Ona Petrauskienė"})
	require.NoError(t, err)
	require.True(t, result.Partial)
	require.Equal(t, []string{StepResidentCreation}, result.Pending)
	require.Nil(t, result.Resident)

	// Contract and bed binding both stand.
	stored, err := f.contracts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, model.ContractStatusActive, stored.Status)
	require.NotNil(t, result.Bed)
	require.Equal(t, model.BedStatusOccupied, result.Bed.Status)
}

func TestActivationWithoutBedSelection(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	d := fullDraft()
	d.RoomNumber = ""
	d.BedNumber = 0
	d.RoomType = model.RoomTypeSingle // pricing still needs a type
	c := f.draft(t, d)

	result, err := f.workflow.Activate(ctx, c.ID, model.Lead{FullName: "Ona Petrauskienė"})
	require.NoError(t, err)
	require.False(t, result.Partial)
	require.Nil(t, result.Bed)
	require.NotNil(t, result.Resident)
	require.Empty(t, result.Resident.RoomID)
}

func TestSequentialActivationsGetUniqueNumbers(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	rooms := []struct {
		room string
		bed  int
	}{{"101", 1}, {"102", 1}, {"102", 2}}
	seen := map[string]bool{}
	for i, sel := range rooms {
		d := fullDraft()
		d.ResidentID = "lead-" + string(rune('a'+i))
		d.RoomNumber = sel.room
		d.BedNumber = sel.bed
		c := f.draft(t, d)

		result, err := f.workflow.Activate(ctx, c.ID, model.Lead{FullName: "Resident " + sel.room})
		require.NoError(t, err)
		require.False(t, result.Partial)
		require.False(t, seen[result.Contract.Number], "number %s assigned twice", result.Contract.Number)
		seen[result.Contract.Number] = true
	}
	require.True(t, seen["AM-2988/2026"])
	require.True(t, seen["AM-2989/2026"])
	require.True(t, seen["AM-2990/2026"])
}
