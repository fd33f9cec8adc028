package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vilkasoft/carehome-backend/internal/model"
	"github.com/vilkasoft/carehome-backend/internal/store"
)

// contractsDocument is the contracts aggregate as persisted.
type contractsDocument struct {
	Contracts []model.Contract `json:"contracts"`
}

// ContractRepo owns the contracts aggregate.  Like the inventory it is
// one document rewritten wholesale; a contract update commits on its
// own, never together with a bed or resident write.
type ContractRepo struct {
	store store.DocumentStore
}

// NewContractRepo returns a ContractRepo bound to the given store.
func NewContractRepo(s store.DocumentStore) *ContractRepo {
	return &ContractRepo{store: s}
}

func (r *ContractRepo) load(ctx context.Context) (*contractsDocument, error) {
	body, err := r.store.Load(ctx, store.DocContracts)
	if errors.Is(err, store.ErrNotFound) {
		return &contractsDocument{}, nil
	}
	if err != nil {
		return nil, err
	}
	var doc contractsDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode contracts document: %w", err)
	}
	return &doc, nil
}

func (r *ContractRepo) save(ctx context.Context, doc *contractsDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode contracts document: %w", err)
	}
	return r.store.Save(ctx, store.DocContracts, body)
}

// ContractDraft is the caller-supplied part of a new draft contract.
type ContractDraft struct {
	Residence       string     `json:"residence"`
	ResidentID      string     `json:"resident_id,omitempty"`
	ClientID        string     `json:"client_id,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	NoEndDate       bool       `json:"no_end_date,omitempty"`
	RoomNumber      string     `json:"room_number,omitempty"`
	BedNumber       int        `json:"bed_number,omitempty"`
	RoomType        string     `json:"room_type,omitempty"`
	CareLevel       string     `json:"care_level,omitempty"`
	DiscountPercent float64    `json:"discount_percent,omitempty"`
}

// CreateDraft stores a new draft contract.  Drafts may be incomplete;
// full validation happens at activation.  Only the residence must be
// known up front because it fixes the numbering sequence.
func (r *ContractRepo) CreateDraft(ctx context.Context, draft ContractDraft) (model.Contract, error) {
	if _, ok := model.ResidenceByKey(draft.Residence); !ok {
		return model.Contract{}, Validation("unknown residence: " + draft.Residence)
	}
	doc, err := r.load(ctx)
	if err != nil {
		return model.Contract{}, err
	}
	c := model.Contract{
		ID:              NewID(),
		Status:          model.ContractStatusDraft,
		Residence:       draft.Residence,
		ResidentID:      draft.ResidentID,
		ClientID:        draft.ClientID,
		StartDate:       draft.StartDate,
		EndDate:         draft.EndDate,
		NoEndDate:       draft.NoEndDate,
		RoomNumber:      draft.RoomNumber,
		BedNumber:       draft.BedNumber,
		RoomType:        draft.RoomType,
		CareLevel:       draft.CareLevel,
		DiscountPercent: draft.DiscountPercent,
		CreatedAt:       time.Now().UTC(),
	}
	doc.Contracts = append(doc.Contracts, c)
	if err := r.save(ctx, doc); err != nil {
		return model.Contract{}, err
	}
	return c, nil
}

// GetByID returns the contract with the given ID.
func (r *ContractRepo) GetByID(ctx context.Context, id string) (model.Contract, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return model.Contract{}, err
	}
	for _, c := range doc.Contracts {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Contract{}, ErrContractNotFound
}

// List returns every contract.  Callers that need a numbering snapshot
// must call this immediately before activating.
func (r *ContractRepo) List(ctx context.Context) ([]model.Contract, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Contracts, nil
}

// Update replaces the stored contract with the same ID.
func (r *ContractRepo) Update(ctx context.Context, c model.Contract) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range doc.Contracts {
		if doc.Contracts[i].ID == c.ID {
			doc.Contracts[i] = c
			return r.save(ctx, doc)
		}
	}
	return ErrContractNotFound
}
