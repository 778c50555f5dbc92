package get

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktracker_api/internal/platform/business/errs"
	"stocktracker_api/internal/platform/business/models"
	"stocktracker_api/internal/platform/business/services"
)

type fakeCache struct {
	entries map[string]*models.ReturnDayEntry
	getErr  error
	putErr  error
	puts    int
}

func (f *fakeCache) Get(ctx context.Context, barcode string) (*models.ReturnDayEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.entries[barcode], nil
}

func (f *fakeCache) Put(ctx context.Context, barcode string, days int) error {
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	if f.entries == nil {
		f.entries = map[string]*models.ReturnDayEntry{}
	}
	f.entries[barcode] = &models.ReturnDayEntry{Barcode: barcode, Days: days}
	return nil
}

func TestReturnWindow_CacheHitSkipsPanel(t *testing.T) {
	caller := &fakeCaller{}
	cache := &fakeCache{entries: map[string]*models.ReturnDayEntry{
		"111": {Barcode: "111", Days: 14},
	}}
	resolver := NewReturnWindowResolver(caller, &fakeIndex{}, cache, testValues(), io.Discard)

	days, err := resolver.Resolve(context.Background(), "111")
	require.NoError(t, err)
	assert.Equal(t, 14, days)
	assert.Empty(t, caller.calls)
}

func TestReturnWindow_MissResolvesAndCaches(t *testing.T) {
	search := []byte(`{"data":{"data":{"products":[{"id":777,"name":"Молоко 3.2%"}]}}}`)
	// панель отдает dead строкой -- декодер обязан это пережить
	detail := []byte(`{"data":{"data":{"products":[{"id":777,"expDays":{"dead":"5"}}]}}}`)
	caller := &fakeCaller{responses: []json.RawMessage{search, detail}}
	cache := &fakeCache{}
	resolver := NewReturnWindowResolver(caller, &fakeIndex{}, cache, testValues(), io.Discard)

	days, err := resolver.Resolve(context.Background(), "111")
	require.NoError(t, err)
	assert.Equal(t, 5, days)

	require.Len(t, caller.calls, 2)
	assert.Equal(t, services.PanelWarehouse, caller.calls[0].panel)
	assert.Equal(t, "/warehouse/301/products", caller.calls[0].path)
	assert.Equal(t, 1, cache.puts)

	// повторный запрос обслуживается кэшем, панель больше не трогаем
	days, err = resolver.Resolve(context.Background(), "111")
	require.NoError(t, err)
	assert.Equal(t, 5, days)
	assert.Len(t, caller.calls, 2)
}

func TestReturnWindow_IndexHitSkipsSearchCall(t *testing.T) {
	detail := []byte(`{"data":{"data":{"products":[{"id":"777","expDays":{"dead":7}}]}}}`)
	caller := &fakeCaller{responses: []json.RawMessage{detail}}
	index := &fakeIndex{mappings: map[string]*models.BarcodeMapping{
		"111": {Barcode: "111", ProductID: "777"},
	}}
	resolver := NewReturnWindowResolver(caller, index, &fakeCache{}, testValues(), io.Discard)

	days, err := resolver.Resolve(context.Background(), "111")
	require.NoError(t, err)
	assert.Equal(t, 7, days)
	require.Len(t, caller.calls, 1)
}

func TestReturnWindow_ProductNotFound(t *testing.T) {
	caller := &fakeCaller{responses: []json.RawMessage{
		[]byte(`{"data":{"data":{"products":[]}}}`),
	}}
	resolver := NewReturnWindowResolver(caller, &fakeIndex{}, &fakeCache{}, testValues(), io.Discard)

	_, err := resolver.Resolve(context.Background(), "111")
	require.Error(t, err)
	assert.Equal(t, errs.KindProductNotFound, errs.KindOf(err))
	// до деталки дело не дошло
	assert.Len(t, caller.calls, 1)
}

func TestReturnWindow_NoExpDays(t *testing.T) {
	search := []byte(`{"data":{"data":{"products":[{"id":"777"}]}}}`)
	detail := []byte(`{"data":{"data":{"products":[{"id":"777","name":"Хлеб"}]}}}`)
	caller := &fakeCaller{responses: []json.RawMessage{search, detail}}
	cache := &fakeCache{}
	resolver := NewReturnWindowResolver(caller, &fakeIndex{}, cache, testValues(), io.Discard)

	_, err := resolver.Resolve(context.Background(), "111")
	require.Error(t, err)
	assert.Equal(t, errs.KindReturnDateNotFound, errs.KindOf(err))
	// отказ не кэшируем
	assert.Zero(t, cache.puts)
}

func TestReturnWindow_CacheWriteFailureIsBestEffort(t *testing.T) {
	search := []byte(`{"data":{"data":{"products":[{"id":"777"}]}}}`)
	detail := []byte(`{"data":{"data":{"products":[{"id":"777","expDays":{"dead":3}}]}}}`)
	caller := &fakeCaller{responses: []json.RawMessage{search, detail}}
	cache := &fakeCache{putErr: errs.New(errs.KindNetwork, "redis down")}
	resolver := NewReturnWindowResolver(caller, &fakeIndex{}, cache, testValues(), io.Discard)

	days, err := resolver.Resolve(context.Background(), "111")
	require.NoError(t, err)
	assert.Equal(t, 3, days)
}

func TestReturnWindow_EmptyBarcode(t *testing.T) {
	caller := &fakeCaller{}
	resolver := NewReturnWindowResolver(caller, &fakeIndex{}, &fakeCache{}, testValues(), io.Discard)

	_, err := resolver.Resolve(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, errs.KindProductNotFound, errs.KindOf(err))
	assert.Empty(t, caller.calls)
}
