package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedger_Stock_AbsentIsZero(t *testing.T) {
	l := Ledger{1: 5}

	assert.Equal(t, 5, l.Stock(1))
	assert.Equal(t, 0, l.Stock(99))
}

func TestLedger_Reconcile_SufficientStock(t *testing.T) {
	l := Ledger{1: 5, 2: 1}

	updates, mismatch := l.Reconcile(map[int64]int{1: 2, 2: 1})

	assert.False(t, mismatch)
	assert.Equal(t, Ledger{1: 3, 2: 0}, updates)
}

func TestLedger_Reconcile_OversoldClampsToZero(t *testing.T) {
	l := Ledger{1: 3}

	updates, mismatch := l.Reconcile(map[int64]int{1: 10})

	assert.True(t, mismatch)
	assert.Equal(t, Ledger{1: 0}, updates)
}

func TestLedger_Reconcile_AbsentProductTreatedAsZero(t *testing.T) {
	l := Ledger{}

	updates, mismatch := l.Reconcile(map[int64]int{7: 1})

	assert.True(t, mismatch)
	assert.Equal(t, Ledger{7: 0}, updates)
}

func TestLedger_Reconcile_DoesNotMutateReceiver(t *testing.T) {
	l := Ledger{1: 5}
	_, _ = l.Reconcile(map[int64]int{1: 2})
	assert.Equal(t, Ledger{1: 5}, l)
}
