package cart

import (
	"context"
	"io"
	"testing"

	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	carts map[string][]Item
}

func newMemoryStore() *memoryStore {
	return &memoryStore{carts: map[string][]Item{}}
}

func (m *memoryStore) Load(_ context.Context, sessionID string) ([]Item, error) {
	return m.carts[sessionID], nil
}

func (m *memoryStore) Save(_ context.Context, sessionID string, items []Item) error {
	if len(items) == 0 {
		delete(m.carts, sessionID)
		return nil
	}
	m.carts[sessionID] = items
	return nil
}

func (m *memoryStore) Clear(_ context.Context, sessionID string) error {
	delete(m.carts, sessionID)
	return nil
}

func newTestService() *Service {
	return NewService(newMemoryStore(), logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
}

func familiarAmericana() Item {
	return Item{ProductID: 7, Titulo: "Americana", Precio: "25.00", Tamanio: "Familiar", Sabores: []string{"Americana"}}
}

func TestAddAssignsFreshEntryIDs(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Add(ctx, "s1", familiarAmericana())
	require.NoError(t, err)
	second, err := svc.Add(ctx, "s1", familiarAmericana())
	require.NoError(t, err)

	assert.Equal(t, 1, first.Count)
	assert.Equal(t, 2, second.Count)

	items, err := svc.Items(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.NotEmpty(t, items[0].ItemID)
	assert.NotEqual(t, items[0].ItemID, items[1].ItemID)
}

func TestIdenticalConfigurationsGroupTogether(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", familiarAmericana())
	require.NoError(t, err)
	summary, err := svc.Add(ctx, "s1", familiarAmericana())
	require.NoError(t, err)

	require.Len(t, summary.Groups, 1)
	assert.Equal(t, 2, summary.Groups[0].Count)
	assert.Equal(t, "50.00", summary.Total)
}

func TestDifferentAddonsSplitGroups(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	withBacon := familiarAmericana()
	withBacon.Agregados = []string{"Tocino"}
	withBacon.Precio = "32.50"

	_, err := svc.Add(ctx, "s1", familiarAmericana())
	require.NoError(t, err)
	summary, err := svc.Add(ctx, "s1", withBacon)
	require.NoError(t, err)

	require.Len(t, summary.Groups, 2)
	assert.Equal(t, "57.50", summary.Total)
}

func TestDuplicateClonesGroupEntry(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	added, err := svc.Add(ctx, "s1", familiarAmericana())
	require.NoError(t, err)

	summary, err := svc.Duplicate(ctx, "s1", added.Groups[0].Key)
	require.NoError(t, err)

	require.Len(t, summary.Groups, 1)
	assert.Equal(t, 2, summary.Groups[0].Count)
	assert.Equal(t, "50.00", summary.Total)

	items, err := svc.Items(ctx, "s1")
	require.NoError(t, err)
	assert.NotEqual(t, items[0].ItemID, items[1].ItemID)
}

func TestRemoveOneDropsSingleEntry(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	added, err := svc.Add(ctx, "s1", familiarAmericana())
	require.NoError(t, err)
	key := added.Groups[0].Key
	_, err = svc.Duplicate(ctx, "s1", key)
	require.NoError(t, err)

	summary, err := svc.RemoveOne(ctx, "s1", key)
	require.NoError(t, err)

	require.Len(t, summary.Groups, 1)
	assert.Equal(t, 1, summary.Groups[0].Count)
	assert.Equal(t, "25.00", summary.Total)
}

func TestRemoveGroupDropsEveryEntry(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	other := familiarAmericana()
	other.ProductID = 8
	other.Titulo = "Tropical"
	other.Precio = "38.00"

	added, err := svc.Add(ctx, "s1", familiarAmericana())
	require.NoError(t, err)
	key := added.Groups[0].Key
	_, err = svc.Duplicate(ctx, "s1", key)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", other)
	require.NoError(t, err)

	summary, err := svc.RemoveGroup(ctx, "s1", key)
	require.NoError(t, err)

	require.Len(t, summary.Groups, 1)
	assert.Equal(t, "Tropical", summary.Groups[0].Item.Titulo)
	assert.Equal(t, "38.00", summary.Total)
}

func TestRemoveUnknownGroupFails(t *testing.T) {
	svc := newTestService()

	_, err := svc.RemoveOne(context.Background(), "s1", `{"id":999}`)
	assert.Error(t, err)

	_, err = svc.RemoveGroup(context.Background(), "s1", `{"id":999}`)
	assert.Error(t, err)
}

func TestTotalIsSumOfFrozenPrices(t *testing.T) {
	items := []Item{
		{Precio: "25.00"},
		{Precio: "25.00"},
		{Precio: "38.00"},
		{Precio: "not-a-price"},
	}

	assert.Equal(t, "88.00", Total(items).StringFixed(2))
}

func TestGroupSubtotal(t *testing.T) {
	groups := GroupItems([]Item{familiarAmericana(), familiarAmericana()})

	require.Len(t, groups, 1)
	assert.Equal(t, "50.00", groups[0].Subtotal().StringFixed(2))
}

func TestEmptyCartSummary(t *testing.T) {
	svc := newTestService()

	summary, err := svc.Summarize(context.Background(), "s1")
	require.NoError(t, err)

	assert.Empty(t, summary.Groups)
	assert.Equal(t, 0, summary.Count)
	assert.Equal(t, "0.00", summary.Total)
}
