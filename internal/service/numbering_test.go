package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vilkasoft/carehome-backend/internal/model"
	"github.com/vilkasoft/carehome-backend/internal/repository"
)

func numbered(numbers ...string) []model.Contract {
	out := make([]model.Contract, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, model.Contract{Number: n, Status: model.ContractStatusActive})
	}
	return out
}

func TestNextContractNumberMelodijaStartOffset(t *testing.T) {
	// Melodija continues an inherited sequence: the first contract of a
	// year starts at 2988, not zero.
	n, err := NextContractNumber(model.ResidenceMelodija, 2026, nil)
	require.NoError(t, err)
	require.Equal(t, "AM-2988/2026", n)

	n, err = NextContractNumber(model.ResidenceMelodija, 2026, numbered("AM-2988/2026", "AM-2990/2026"))
	require.NoError(t, err)
	require.Equal(t, "AM-2991/2026", n)
}

func TestNextContractNumberSampeterisStartsAtZero(t *testing.T) {
	n, err := NextContractNumber(model.ResidenceSampeteris, 2026, nil)
	require.NoError(t, err)
	require.Equal(t, "AŠ-0000/2026", n)

	n, err = NextContractNumber(model.ResidenceSampeteris, 2026, numbered("AŠ-0000/2026"))
	require.NoError(t, err)
	require.Equal(t, "AŠ-0001/2026", n)
}

func TestNextContractNumberIgnoresOtherResidencesAndYears(t *testing.T) {
	existing := numbered(
		"AM-3000/2026",
		"AM-3500/2025",  // other year
		"AŠ-9999/2026",  // other residence
		"",              // drafts have no number yet
		"AM-xxxx/2026",  // malformed suffix is skipped
	)
	n, err := NextContractNumber(model.ResidenceMelodija, 2026, existing)
	require.NoError(t, err)
	require.Equal(t, "AM-3001/2026", n)
}

func TestNextContractNumberMonotonicWhenFedBack(t *testing.T) {
	var existing []model.Contract
	prev := ""
	for i := 0; i < 5; i++ {
		n, err := NextContractNumber(model.ResidenceMelodija, 2026, existing)
		require.NoError(t, err)
		require.Greater(t, n, prev)
		prev = n
		existing = append(existing, model.Contract{Number: n})
	}
	require.Equal(t, "AM-2992/2026", prev)
}

func TestNextContractNumberUnknownResidence(t *testing.T) {
	_, err := NextContractNumber("seaside", 2026, nil)
	var verr *repository.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestValidateContractNumber(t *testing.T) {
	require.True(t, ValidateContractNumber("AM-2988/2026"))
	require.True(t, ValidateContractNumber("AŠ-0000/2026")) // non-ASCII uppercase prefix
	require.False(t, ValidateContractNumber("am-2988/2026"))
	require.False(t, ValidateContractNumber("AM-298/2026"))
	require.False(t, ValidateContractNumber("AM-2988-1/2026")) // appendix shape, not a contract
	require.False(t, ValidateContractNumber("AM-2988/26"))
	require.False(t, ValidateContractNumber(""))
}

func TestAppendixNumber(t *testing.T) {
	n, err := AppendixNumber("AM-2988/2026", 1)
	require.NoError(t, err)
	require.Equal(t, "AM-2988-1/2026", n)

	n, err = AppendixNumber("AŠ-0000/2026", 3)
	require.NoError(t, err)
	require.Equal(t, "AŠ-0000-3/2026", n)

	_, err = AppendixNumber("AM-2988/2026", 0)
	var verr *repository.ValidationError
	require.ErrorAs(t, err, &verr)
	_, err = AppendixNumber("bogus", 1)
	require.ErrorAs(t, err, &verr)
}
