package model_test

import (
	"testing"

	"github.com/ogulcanaydogan/budget-intake/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumberKind(t *testing.T) {
	k, err := model.ParseNumberKind("integer")
	require.NoError(t, err)
	assert.Equal(t, model.KindInteger, k)

	k, err = model.ParseNumberKind("real")
	require.NoError(t, err)
	assert.Equal(t, model.KindReal, k)

	_, err = model.ParseNumberKind("float")
	assert.Error(t, err)
}

func TestEntry(t *testing.T) {
	v := model.Value("007")
	assert.False(t, v.IsDone())
	assert.Equal(t, "007", v.Text())
	assert.Equal(t, `Value("007")`, v.String())

	assert.True(t, model.Done.IsDone())
	assert.Empty(t, model.Done.Text())
	assert.Equal(t, "Done", model.Done.String())
}

func TestPhase_FileName(t *testing.T) {
	assert.Equal(t, "budget.csv", model.PhaseBudget.FileName())
	assert.Equal(t, "spending.csv", model.PhaseSpending.FileName())
	assert.Equal(t, "donation.csv", model.PhaseDonation.FileName())
	assert.Equal(t, []model.Phase{model.PhaseBudget, model.PhaseSpending, model.PhaseDonation}, model.Phases)
}

func TestPhaseState_String(t *testing.T) {
	assert.Equal(t, "not_started", model.StateNotStarted.String())
	assert.Equal(t, "closed", model.StateClosed.String())
	assert.Equal(t, "aborted", model.StateAborted.String())
	assert.Equal(t, "PhaseState(42)", model.PhaseState(42).String())
}
