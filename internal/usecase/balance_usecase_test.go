package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gojournal/internal/domain"
)

func TestComputeBalance(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	cash := l.register(t, "asset", "Cash", "USD")
	sales := l.register(t, "revenue", "Sales", "USD")

	t1 := l.clock.Now()
	l.transfer(t, cash, sales, "40.00")
	l.clock.Set(t1.Add(24 * time.Hour))
	l.transfer(t, cash, sales, "2.50")
	l.transfer(t, sales, cash, "0.50")

	current, err := l.balances.ComputeBalance(ctx, cash.ID, nil)
	require.NoError(t, err)
	requireDecimal(t, "42.00", current.Balance)
	requireDecimal(t, "42.50", current.TotalDebits)
	requireDecimal(t, "0.50", current.TotalCredits)
	assert.Equal(t, int64(6), current.LastSequence)

	revenue, err := l.balances.ComputeBalance(ctx, sales.ID, nil)
	require.NoError(t, err)
	requireDecimal(t, "42.00", revenue.Balance)

	past, err := l.balances.ComputeBalance(ctx, cash.ID, &t1)
	require.NoError(t, err)
	requireDecimal(t, "40.00", past.Balance)
	assert.Equal(t, int64(1), past.LastSequence)
	assert.Equal(t, t1, past.AsOf)

	again, err := l.balances.ComputeBalance(ctx, cash.ID, &t1)
	require.NoError(t, err)
	assert.Equal(t, past, again)

	_, err = l.balances.ComputeBalance(ctx, "missing", nil)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestReconcileAccount(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	cash := l.register(t, "asset", "Cash", "USD")
	equity := l.register(t, "equity", "Owner Equity", "USD")
	l.transfer(t, cash, equity, "10")

	report, err := l.recon.ReconcileAccount(ctx, cash.ID)
	require.NoError(t, err)
	assert.True(t, report.Reconciled())
	assert.Equal(t, 1, report.AccountsChecked)

	_, err = l.recon.ReconcileAccount(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestCheckConsistency_PerCurrency(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	usd := l.register(t, "asset", "Cash", "USD")
	usdEq := l.register(t, "equity", "Owner Equity", "USD")
	jpy := l.register(t, "asset", "Cash", "JPY")
	jpyEq := l.register(t, "equity", "Owner Equity", "JPY")

	l.transfer(t, usd, usdEq, "10.00")
	l.transfer(t, jpy, jpyEq, "1500")

	report, err := l.recon.CheckConsistency(ctx)
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	require.Len(t, report.Currencies, 2)
	assert.Equal(t, "JPY", report.Currencies[0].Currency)
	requireDecimal(t, "1500", report.Currencies[0].TotalDebits)
	assert.True(t, report.Currencies[1].Consistent)
}
