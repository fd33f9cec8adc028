package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vilkasoft/carehome-backend/internal/model"
	"github.com/vilkasoft/carehome-backend/internal/store"
)

// residentsDocument is the residents aggregate as persisted.
type residentsDocument struct {
	Residents []model.Resident `json:"residents"`
}

// ResidentRepo is the resident registry: it owns resident records and
// creates them from leads during the activation workflow.  It persists
// its own document, independent of inventory and contracts.
type ResidentRepo struct {
	store store.DocumentStore
}

// NewResidentRepo returns a ResidentRepo bound to the given store.
func NewResidentRepo(s store.DocumentStore) *ResidentRepo {
	return &ResidentRepo{store: s}
}

func (r *ResidentRepo) load(ctx context.Context) (*residentsDocument, error) {
	body, err := r.store.Load(ctx, store.DocResidents)
	if errors.Is(err, store.ErrNotFound) {
		return &residentsDocument{}, nil
	}
	if err != nil {
		return nil, err
	}
	var doc residentsDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode residents document: %w", err)
	}
	return &doc, nil
}

func (r *ResidentRepo) save(ctx context.Context, doc *residentsDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode residents document: %w", err)
	}
	return r.store.Save(ctx, store.DocResidents, body)
}

// CreateFromLead turns a lead into a resident bound to the given room,
// bed and contract.  Room and bed may be empty when no bed could be
// bound; the resident is then created without a location and moved
// later.
func (r *ResidentRepo) CreateFromLead(ctx context.Context, lead model.Lead, roomID string, bedNumber int, contractID string) (model.Resident, error) {
	if strings.TrimSpace(lead.FullName) == "" {
		return model.Resident{}, Validation("lead full name is required")
	}
	doc, err := r.load(ctx)
	if err != nil {
		return model.Resident{}, err
	}
	res := model.Resident{
		ID:         NewID(),
		FullName:   strings.TrimSpace(lead.FullName),
		LeadID:     lead.ID,
		ContractID: contractID,
		RoomID:     roomID,
		BedNumber:  bedNumber,
		MovedInAt:  time.Now().UTC(),
	}
	doc.Residents = append(doc.Residents, res)
	if err := r.save(ctx, doc); err != nil {
		return model.Resident{}, err
	}
	return res, nil
}

// GetByID returns the resident with the given ID.
func (r *ResidentRepo) GetByID(ctx context.Context, id string) (model.Resident, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return model.Resident{}, err
	}
	for _, res := range doc.Residents {
		if res.ID == id {
			return res, nil
		}
	}
	return model.Resident{}, ErrResidentNotFound
}
