package service

import (
	"fmt"

	"github.com/vilkasoft/carehome-backend/internal/model"
)

// Care levels the catalog prices.  Assessment scoring that assigns a
// level to a resident happens outside this system; contracts arrive
// with the level already set.
const (
	CareLevel1 = "LEVEL_1"
	CareLevel2 = "LEVEL_2"
	CareLevel3 = "LEVEL_3"
)

// ProductCatalog resolves a billable product from the pricing
// dimensions of a contract.  A nil result means no product covers the
// combination, which blocks activation.
type ProductCatalog interface {
	FindProduct(careLevel, roomType, residence, termType string) *model.Product
}

// StaticCatalog is the built-in pricing table.  The catalog contents
// are opaque to the rest of the system; swapping this for a
// database-backed catalog only needs the interface above.
type StaticCatalog struct{}

// NewStaticCatalog returns the built-in catalog.
func NewStaticCatalog() *StaticCatalog { return &StaticCatalog{} }

var baseDailyRate = map[string]float64{
	CareLevel1: 45.50,
	CareLevel2: 58.00,
	CareLevel3: 72.50,
}

var residenceCode = map[string]string{
	model.ResidenceMelodija:   "MEL",
	model.ResidenceSampeteris: "SAM",
}

// FindProduct prices (care level, room type, residence, term type).
// Singles carry a fixed supplement, sampeteris runs slightly above
// melodija, and short-term stays are billed at a 15% uplift.
func (c *StaticCatalog) FindProduct(careLevel, roomType, residence, termType string) *model.Product {
	rate, ok := baseDailyRate[careLevel]
	if !ok {
		return nil
	}
	resCode, ok := residenceCode[residence]
	if !ok {
		return nil
	}
	var typeCode string
	switch roomType {
	case model.RoomTypeSingle:
		typeCode = "SGL"
		rate += 12.00
	case model.RoomTypeDouble:
		typeCode = "DBL"
	default:
		return nil
	}
	if residence == model.ResidenceSampeteris {
		rate += 4.50
	}
	termCode := "LT"
	if termType == model.TermShort {
		termCode = "ST"
		rate *= 1.15
	} else if termType != model.TermLong {
		return nil
	}
	return &model.Product{
		Code:      fmt.Sprintf("%s-%s-%s-%s", resCode, careLevel, typeCode, termCode),
		DailyRate: model.RoundRate(rate),
	}
}
