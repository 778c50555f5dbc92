package get

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktracker_api/config/values"
	"stocktracker_api/internal/platform/business/errs"
	"stocktracker_api/internal/platform/business/models"
	"stocktracker_api/internal/platform/business/services"
)

type fakeCall struct {
	panel services.Panel
	path  string
	query url.Values
	body  interface{}
}

// fakeCaller отдает заготовленные ответы по порядку вызовов.
type fakeCaller struct {
	responses []json.RawMessage
	errs      []error
	calls     []fakeCall
}

func (f *fakeCaller) Call(ctx context.Context, panel services.Panel, method, path string, query url.Values, body interface{}, timeout time.Duration) (json.RawMessage, error) {
	n := len(f.calls)
	f.calls = append(f.calls, fakeCall{panel: panel, path: path, query: query, body: body})
	if n < len(f.errs) && f.errs[n] != nil {
		return nil, f.errs[n]
	}
	if n < len(f.responses) {
		return f.responses[n], nil
	}
	return json.RawMessage(`{"data":[],"total":0}`), nil
}

type fakeIndex struct {
	mappings map[string]*models.BarcodeMapping
	err      error
}

func (f *fakeIndex) Get(ctx context.Context, barcode string) (*models.BarcodeMapping, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.mappings[barcode], nil
}

func testValues() values.PlatformValues {
	return values.PlatformValues{
		StockWarehouseIDs: []string{"301"},
		WarehouseID:       "301",
	}
}

func TestStockResolver_FastPath(t *testing.T) {
	caller := &fakeCaller{responses: []json.RawMessage{
		[]byte(`{"data":[{"productId":123,"available":42}],"total":1}`),
	}}
	index := &fakeIndex{mappings: map[string]*models.BarcodeMapping{
		"4600123456789": {Barcode: "4600123456789", ProductID: "123"},
	}}
	resolver := NewStockResolver(caller, index, testValues(), io.Discard)

	qty, err := resolver.Resolve(context.Background(), "4600123456789")
	require.NoError(t, err)
	require.NotNil(t, qty)
	assert.Equal(t, 42, *qty)

	// известный товар -- ровно один точечный вызов
	require.Len(t, caller.calls, 1)
	assert.Equal(t, services.PanelRetail, caller.calls[0].panel)
	assert.Equal(t, "/stocks", caller.calls[0].path)
	assert.Equal(t, "1", caller.calls[0].query.Get("limit"))
	assert.Equal(t, "0", caller.calls[0].query.Get("offset"))
}

func TestStockResolver_FastPathEmptyMeansNotInCatalog(t *testing.T) {
	caller := &fakeCaller{responses: []json.RawMessage{
		[]byte(`{"data":[],"total":0}`),
	}}
	index := &fakeIndex{mappings: map[string]*models.BarcodeMapping{
		"111": {Barcode: "111", ProductID: "9"},
	}}
	resolver := NewStockResolver(caller, index, testValues(), io.Discard)

	qty, err := resolver.Resolve(context.Background(), "111")
	require.NoError(t, err)
	assert.Nil(t, qty)
}

func TestStockResolver_SlowScanFindsOnSecondPage(t *testing.T) {
	page1 := []byte(`{"data":[
		{"productId":"1","available":5,"packagingInfo":{"box":{"barcodes":["1000"]}}}
	],"total":2}`)
	page2 := []byte(`{"data":[
		{"productId":"2","available":17,"packagingInfo":{
			"pickingType":"shelf",
			"unit":{"barcodes":["8690570546989 "]}
		}}
	],"total":2}`)
	caller := &fakeCaller{responses: []json.RawMessage{page1, page2}}
	resolver := NewStockResolver(caller, &fakeIndex{}, testValues(), io.Discard)

	// штрихкод с пробелами по краям обязан находиться
	qty, err := resolver.Resolve(context.Background(), " 8690570546989 ")
	require.NoError(t, err)
	require.NotNil(t, qty)
	assert.Equal(t, 17, *qty)

	require.Len(t, caller.calls, 2)
	assert.Equal(t, "0", caller.calls[0].query.Get("offset"))
	assert.Equal(t, "1", caller.calls[1].query.Get("offset"))
	assert.Equal(t, "1000", caller.calls[0].query.Get("limit"))
}

func TestStockResolver_SlowScanStopsOnEmptyPage(t *testing.T) {
	caller := &fakeCaller{responses: []json.RawMessage{
		[]byte(`{"data":[{"productId":"1","available":5,"packagingInfo":{"box":{"barcodes":["1000"]}}}],"total":0}`),
		[]byte(`{"data":[],"total":0}`),
	}}
	resolver := NewStockResolver(caller, &fakeIndex{}, testValues(), io.Discard)

	qty, err := resolver.Resolve(context.Background(), "2000")
	require.NoError(t, err)
	assert.Nil(t, qty)
	assert.Len(t, caller.calls, 2)
}

func TestStockResolver_SlowScanCappedAtMaxPages(t *testing.T) {
	page := json.RawMessage(`{"data":[{"productId":"1","available":5,"packagingInfo":{"box":{"barcodes":["1000"]}}}],"total":0}`)
	responses := make([]json.RawMessage, 0, ScanMaxPages+5)
	for i := 0; i < ScanMaxPages+5; i++ {
		responses = append(responses, page)
	}
	caller := &fakeCaller{responses: responses}
	resolver := NewStockResolver(caller, &fakeIndex{}, testValues(), io.Discard)

	qty, err := resolver.Resolve(context.Background(), "2000")
	require.NoError(t, err)
	assert.Nil(t, qty)
	assert.Len(t, caller.calls, ScanMaxPages)
}

func TestStockResolver_SlowScanStopsAtTotal(t *testing.T) {
	caller := &fakeCaller{responses: []json.RawMessage{
		[]byte(`{"data":[{"productId":"1","available":5,"packagingInfo":{"box":{"barcodes":["1000"]}}}],"total":1}`),
	}}
	resolver := NewStockResolver(caller, &fakeIndex{}, testValues(), io.Discard)

	qty, err := resolver.Resolve(context.Background(), "2000")
	require.NoError(t, err)
	assert.Nil(t, qty)
	assert.Len(t, caller.calls, 1)
}

func TestStockResolver_PanelErrorIsNotSwallowed(t *testing.T) {
	caller := &fakeCaller{errs: []error{errs.New(errs.KindUnauthorized, "bad token")}}
	index := &fakeIndex{mappings: map[string]*models.BarcodeMapping{
		"111": {Barcode: "111", ProductID: "9"},
	}}
	resolver := NewStockResolver(caller, index, testValues(), io.Discard)

	qty, err := resolver.Resolve(context.Background(), "111")
	require.Error(t, err)
	assert.Nil(t, qty)
	assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
	// ретраев нет
	assert.Len(t, caller.calls, 1)
}

func TestStockResolver_IndexFailureDegradesToScan(t *testing.T) {
	caller := &fakeCaller{responses: []json.RawMessage{
		[]byte(`{"data":[{"productId":"1","available":3,"packagingInfo":{"box":{"barcodes":["111"]}}}],"total":1}`),
	}}
	index := &fakeIndex{err: errs.New(errs.KindNetwork, "index down")}
	resolver := NewStockResolver(caller, index, testValues(), io.Discard)

	qty, err := resolver.Resolve(context.Background(), "111")
	require.NoError(t, err)
	require.NotNil(t, qty)
	assert.Equal(t, 3, *qty)
	// листание, не точечный вызов
	assert.Equal(t, "1000", caller.calls[0].query.Get("limit"))
}

func TestStockResolver_EmptyBarcode(t *testing.T) {
	caller := &fakeCaller{}
	resolver := NewStockResolver(caller, &fakeIndex{}, testValues(), io.Discard)

	qty, err := resolver.Resolve(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, qty)
	assert.Empty(t, caller.calls)
}
