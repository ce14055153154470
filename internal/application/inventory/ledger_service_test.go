package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/souvikdhua/cosmeticking/internal/domain/inventory"
	"github.com/souvikdhua/cosmeticking/internal/domain/shared"
	"github.com/souvikdhua/cosmeticking/internal/domain/store"
	storeinfra "github.com/souvikdhua/cosmeticking/internal/infrastructure/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// brokenStore wraps a working store but fails every write.
type brokenStore struct {
	store.Store
}

func (b *brokenStore) Set(context.Context, string, string, any) error {
	return errors.New("write refused")
}

func (b *brokenStore) Merge(context.Context, string, string, map[string]any) error {
	return errors.New("write refused")
}

func startService(t *testing.T, st store.Store) *Service {
	t.Helper()
	svc := NewService(st, zap.NewNop())
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(svc.Stop)
	return svc
}

func TestService_SetStock_RoundTripsThroughStore(t *testing.T) {
	mem := storeinfra.NewMemoryStore()
	svc := startService(t, mem)
	ctx := context.Background()

	require.NoError(t, svc.SetStock(ctx, 101, 7))
	require.NoError(t, svc.SetStock(ctx, 202, 3))
	assert.Equal(t, 7, svc.Stock(101))
	assert.Equal(t, 3, svc.Stock(202))

	// A second service on the same store sees the merged document.
	other := startService(t, mem)
	assert.Equal(t, 7, other.Stock(101))
	assert.Equal(t, 3, other.Stock(202))
}

func TestService_Apply_BatchesIntoOneDocument(t *testing.T) {
	mem := storeinfra.NewMemoryStore()
	svc := startService(t, mem)
	ctx := context.Background()

	require.NoError(t, svc.SetStock(ctx, 1, 5))
	require.NoError(t, svc.SetStock(ctx, 2, 1))
	require.NoError(t, svc.Apply(ctx, inventory.Ledger{1: 3, 2: 0}))

	assert.Equal(t, 3, svc.Stock(1))
	assert.Equal(t, 0, svc.Stock(2))

	other := startService(t, mem)
	assert.Equal(t, inventory.Ledger{1: 3, 2: 0}, other.Snapshot())
}

func TestService_SetStock_KeepsLocalOnPushFailure(t *testing.T) {
	svc := startService(t, &brokenStore{Store: storeinfra.NewMemoryStore()})

	err := svc.SetStock(context.Background(), 101, 7)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "STOCK_UPDATE_FAILED", domainErr.Code)

	// The optimistic local write survives until the store corrects it.
	assert.Equal(t, 7, svc.Stock(101))
}

func TestService_Stock_AbsentProductIsZero(t *testing.T) {
	svc := startService(t, storeinfra.NewMemoryStore())
	assert.Equal(t, 0, svc.Stock(999))
}

func TestService_Start_IgnoresMalformedEntries(t *testing.T) {
	mem := storeinfra.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, mem.Merge(ctx, store.Inventory, store.InventoryDoc, map[string]any{
		"101":     4,
		"corrupt": 2,
	}))

	svc := startService(t, mem)
	assert.Equal(t, 4, svc.Stock(101))
	assert.Equal(t, inventory.Ledger{101: 4}, svc.Snapshot())
}
