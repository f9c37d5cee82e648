package pgsql

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeymoneyapp/honeymoney_backend/internal/apperrors"
	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	portsrepo "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/repositories"
)

func lockedAccount(id, balance string) domain.Account {
	return domain.Account{AccountID: id, CurrentBalance: decimal.RequireFromString(balance)}
}

func TestCheckAndMergeDeltas_SingleDebit(t *testing.T) {
	locked := map[string]domain.Account{"acc-1": lockedAccount("acc-1", "1000.00")}

	merged, err := checkAndMergeDeltas(locked, portsrepo.BalanceDelta{
		AccountID:    "acc-1",
		Amount:       decimal.RequireFromString("-150.50"),
		EnforceFloor: true,
	})

	require.NoError(t, err)
	assert.True(t, merged["acc-1"].Equal(decimal.RequireFromString("-150.50")))
}

func TestCheckAndMergeDeltas_FloorViolationRejected(t *testing.T) {
	locked := map[string]domain.Account{"acc-1": lockedAccount("acc-1", "100.00")}

	_, err := checkAndMergeDeltas(locked, portsrepo.BalanceDelta{
		AccountID:    "acc-1",
		Amount:       decimal.RequireFromString("-100.01"),
		EnforceFloor: true,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestCheckAndMergeDeltas_ExactZeroAllowed(t *testing.T) {
	locked := map[string]domain.Account{"acc-1": lockedAccount("acc-1", "100.00")}

	merged, err := checkAndMergeDeltas(locked, portsrepo.BalanceDelta{
		AccountID:    "acc-1",
		Amount:       decimal.RequireFromString("-100.00"),
		EnforceFloor: true,
	})

	require.NoError(t, err)
	assert.True(t, merged["acc-1"].Equal(decimal.RequireFromString("-100.00")))
}

func TestCheckAndMergeDeltas_ReversalSkipsFloor(t *testing.T) {
	// A reversal may push a balance below zero; restoring history always wins.
	locked := map[string]domain.Account{"acc-1": lockedAccount("acc-1", "10.00")}

	merged, err := checkAndMergeDeltas(locked, portsrepo.BalanceDelta{
		AccountID:    "acc-1",
		Amount:       decimal.RequireFromString("-50.00"),
		EnforceFloor: false,
	})

	require.NoError(t, err)
	assert.True(t, merged["acc-1"].Equal(decimal.RequireFromString("-50.00")))
}

func TestCheckAndMergeDeltas_SameAccountUpdateJudgedOnNet(t *testing.T) {
	// Update of a 150.50 expense to 200.00 on a balance of 849.50: the
	// reversal restores 1000.00 before the new debit is judged, so the net
	// -49.50 passes even though -200.00 alone would not.
	locked := map[string]domain.Account{"acc-1": lockedAccount("acc-1", "849.50")}

	merged, err := checkAndMergeDeltas(locked,
		portsrepo.BalanceDelta{AccountID: "acc-1", Amount: decimal.RequireFromString("150.50")},
		portsrepo.BalanceDelta{AccountID: "acc-1", Amount: decimal.RequireFromString("-200.00"), EnforceFloor: true},
	)

	require.NoError(t, err)
	assert.True(t, merged["acc-1"].Equal(decimal.RequireFromString("-49.50")))
	assert.True(t, locked["acc-1"].CurrentBalance.Add(merged["acc-1"]).Equal(decimal.RequireFromString("800.00")))
}

func TestCheckAndMergeDeltas_CrossAccountMove(t *testing.T) {
	locked := map[string]domain.Account{
		"acc-1": lockedAccount("acc-1", "849.50"),
		"acc-2": lockedAccount("acc-2", "200.00"),
	}

	merged, err := checkAndMergeDeltas(locked,
		portsrepo.BalanceDelta{AccountID: "acc-1", Amount: decimal.RequireFromString("150.50")},
		portsrepo.BalanceDelta{AccountID: "acc-2", Amount: decimal.RequireFromString("-150.50"), EnforceFloor: true},
	)

	require.NoError(t, err)
	assert.True(t, merged["acc-1"].Equal(decimal.RequireFromString("150.50")))
	assert.True(t, merged["acc-2"].Equal(decimal.RequireFromString("-150.50")))
}

func TestCheckAndMergeDeltas_CrossAccountMoveInsufficientTarget(t *testing.T) {
	locked := map[string]domain.Account{
		"acc-1": lockedAccount("acc-1", "849.50"),
		"acc-2": lockedAccount("acc-2", "100.00"),
	}

	_, err := checkAndMergeDeltas(locked,
		portsrepo.BalanceDelta{AccountID: "acc-1", Amount: decimal.RequireFromString("150.50")},
		portsrepo.BalanceDelta{AccountID: "acc-2", Amount: decimal.RequireFromString("-150.00"), EnforceFloor: true},
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestCheckAndMergeDeltas_MissingLockedAccount(t *testing.T) {
	locked := map[string]domain.Account{}

	_, err := checkAndMergeDeltas(locked, portsrepo.BalanceDelta{
		AccountID:    "acc-ghost",
		Amount:       decimal.RequireFromString("-1.00"),
		EnforceFloor: true,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAccountIDsOf_Deduplicates(t *testing.T) {
	ids := accountIDsOf(
		portsrepo.BalanceDelta{AccountID: "acc-1"},
		portsrepo.BalanceDelta{AccountID: "acc-2"},
		portsrepo.BalanceDelta{AccountID: "acc-1"},
	)

	assert.Equal(t, []string{"acc-1", "acc-2"}, ids)
}
