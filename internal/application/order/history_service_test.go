package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/souvikdhua/cosmeticking/internal/domain/order"
	storeinfra "github.com/souvikdhua/cosmeticking/internal/infrastructure/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startHistory(t *testing.T, mem *storeinfra.MemoryStore) *Service {
	t.Helper()
	svc := NewService(mem, zap.NewNop())
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(svc.Stop)
	return svc
}

func TestService_Append_ShowsUpNewestFirst(t *testing.T) {
	mem := storeinfra.NewMemoryStore()
	svc := startHistory(t, mem)
	ctx := context.Background()

	first := order.New(time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC), map[int64]int{1: 2}, decimal.NewFromInt(300))
	second := order.New(time.Date(2024, 6, 15, 11, 0, 0, 0, time.UTC), map[int64]int{2: 1}, decimal.NewFromInt(80))

	require.NoError(t, svc.Append(ctx, first))
	require.NoError(t, svc.Append(ctx, second))

	got := svc.List()
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
	assert.Equal(t, map[int64]int{1: 2}, got[1].Items)
}

func TestService_Append_SurvivesRestart(t *testing.T) {
	mem := storeinfra.NewMemoryStore()
	svc := startHistory(t, mem)

	o := order.New(time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC), map[int64]int{1: 1}, decimal.NewFromInt(150))
	require.NoError(t, svc.Append(context.Background(), o))

	fresh := startHistory(t, mem)
	require.Len(t, fresh.List(), 1)
	assert.Equal(t, o.ID, fresh.List()[0].ID)
}

func TestService_Clear_DeletesEverything(t *testing.T) {
	mem := storeinfra.NewMemoryStore()
	svc := startHistory(t, mem)
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, order.New(time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC), map[int64]int{1: 1}, decimal.NewFromInt(150))))
	require.NoError(t, svc.Append(ctx, order.New(time.Date(2024, 6, 15, 11, 0, 0, 0, time.UTC), map[int64]int{2: 1}, decimal.NewFromInt(80))))

	require.NoError(t, svc.Clear(ctx))
	assert.Empty(t, svc.List())
}
