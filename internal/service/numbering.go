// Package service holds the business logic of the facility backend:
// contract numbering, the pricing catalog, occupancy reporting, the
// contract lifecycle and the activation workflow.
package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vilkasoft/carehome-backend/internal/model"
	"github.com/vilkasoft/carehome-backend/internal/repository"
)

// contractNumberRe matches PREFIX-dddd/yyyy.  The prefix is one or
// more uppercase letters; Š in the sampeteris prefix is why this is a
// unicode class and not [A-Z].
var contractNumberRe = regexp.MustCompile(`^\p{Lu}+-\d{4}/\d{4}$`)

// NextContractNumber derives the next contract number for a residence
// and year from a snapshot of existing contracts.  It scans the
// snapshot for numbers with the residence's prefix and the given year,
// and returns max(suffix)+1 zero-padded to four digits; when no such
// contract exists it returns the residence's configured start offset.
//
// The function holds no internal counter: it is deterministic given
// the snapshot, so uniqueness depends on the caller passing a fully
// current snapshot.  Two concurrent activations reading the same
// snapshot would derive the same number; the system assumes a single
// logical writer.
func NextContractNumber(residenceKey string, year int, existing []model.Contract) (string, error) {
	res, ok := model.ResidenceByKey(residenceKey)
	if !ok {
		return "", repository.Validation("unknown residence: " + residenceKey)
	}
	prefix := res.Prefix + "-"
	suffix := "/" + strconv.Itoa(year)

	next := res.NumberStart
	for _, c := range existing {
		if c.Number == "" {
			continue
		}
		if !strings.HasPrefix(c.Number, prefix) || !strings.HasSuffix(c.Number, suffix) {
			continue
		}
		mid := c.Number[len(prefix) : len(c.Number)-len(suffix)]
		n, err := strconv.Atoi(mid)
		if err != nil {
			continue
		}
		if n+1 > next {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s-%04d/%d", res.Prefix, next, year), nil
}

// ValidateContractNumber reports whether number has the
// PREFIX-dddd/yyyy shape.
func ValidateContractNumber(number string) bool {
	return contractNumberRe.MatchString(number)
}

// AppendixNumber derives an appendix number from a validated contract
// number and the appendix's 1-based sequence position:
// "AM-2988/2026" with index 1 becomes "AM-2988-1/2026".
func AppendixNumber(contractNumber string, index int) (string, error) {
	if !ValidateContractNumber(contractNumber) {
		return "", repository.Validation("malformed contract number: " + contractNumber)
	}
	if index < 1 {
		return "", repository.Validation("appendix index must be positive")
	}
	slash := strings.Index(contractNumber, "/")
	base := contractNumber[:slash]
	year := contractNumber[slash+1:]
	return fmt.Sprintf("%s-%d/%s", base, index, year), nil
}
