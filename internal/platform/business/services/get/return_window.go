package get

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"stocktracker_api/config/values"
	"stocktracker_api/internal/platform/business/dto/requests"
	"stocktracker_api/internal/platform/business/dto/responses"
	"stocktracker_api/internal/platform/business/errs"
	"stocktracker_api/internal/platform/business/services"
	"stocktracker_api/metrics"
	"stocktracker_api/pkg/logger"
)

const ReturnLookupTimeout = 10 * time.Second

// ReturnWindowResolver отвечает на вопрос "за сколько дней до истечения срока
// товар снимается с полки". Cache-aside поверх двухшагового похода в
// warehouse-панель: поиск карточки по штрихкоду, затем деталка с expDays.dead.
type ReturnWindowResolver struct {
	client services.CatalogCaller
	index  BarcodeIndex
	cache  ReturnDayCache
	values values.PlatformValues
	sfg    singleflight.Group
	log    logger.Logger
}

func NewReturnWindowResolver(client services.CatalogCaller, index BarcodeIndex, cache ReturnDayCache, vals values.PlatformValues, writer io.Writer) *ReturnWindowResolver {
	_log := logger.NewLogger(writer, "[ReturnWindowResolver]")
	return &ReturnWindowResolver{
		client: client,
		index:  index,
		cache:  cache,
		values: vals,
		log:    _log,
	}
}

func (r *ReturnWindowResolver) productsPath() string {
	return fmt.Sprintf("/warehouse/%s/products", r.values.WarehouseID)
}

// Resolve возвращает срок возврата поставщику в днях.
func (r *ReturnWindowResolver) Resolve(ctx context.Context, barcode string) (int, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return 0, errs.New(errs.KindProductNotFound, "empty barcode")
	}

	v, err, _ := r.sfg.Do(barcode, func() (interface{}, error) {
		return r.resolve(ctx, barcode)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (r *ReturnWindowResolver) resolve(ctx context.Context, barcode string) (int, error) {
	// попадание в кэш обрывает всю сетевую активность -- в устоявшемся
	// режиме это доминирующий путь
	entry, err := r.cache.Get(ctx, barcode)
	if err != nil {
		r.log.Log("return-day cache read failed for %q: %v", barcode, err)
		entry = nil
	}
	metrics.RecordCacheLookup(entry != nil)
	if entry != nil {
		return entry.Days, nil
	}

	productID, err := r.resolveProductID(ctx, barcode)
	if err != nil {
		return 0, err
	}

	days, err := r.fetchReturnDays(ctx, productID)
	if err != nil {
		return 0, err
	}

	// запись в кэш best-effort: значение уже вычислено, отказ записи
	// не должен провалить разрешение
	if err := r.cache.Put(ctx, barcode, days); err != nil {
		r.log.Log("return-day cache write failed for %q: %v", barcode, err)
	}
	return days, nil
}

// resolveProductID ищет идентификатор товара: сперва индекс, затем один
// ограниченный вызов поиска по штрихкоду. Листания здесь нет -- у
// warehouse-панели есть выделенный фильтр.
func (r *ReturnWindowResolver) resolveProductID(ctx context.Context, barcode string) (string, error) {
	mapping, err := r.index.Get(ctx, barcode)
	if err != nil {
		r.log.Log("barcode index read failed for %q: %v", barcode, err)
		mapping = nil
	}
	if mapping != nil && mapping.ProductID != "" {
		return mapping.ProductID, nil
	}

	query := url.Values{}
	query.Set("offset", "0")
	query.Set("limit", "1")
	body := requests.ProductsFilter{Barcodes: []string{barcode}}

	raw, err := r.client.Call(ctx, services.PanelWarehouse, http.MethodPost, r.productsPath(), query, body, ReturnLookupTimeout)
	if err != nil {
		return "", err
	}

	var resp responses.ProductsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", errs.Wrap(errs.KindUnknown, "decoding product search response", err)
	}
	products := resp.Data.Data.Products
	if len(products) == 0 || products[0].ProductID() == "" {
		return "", errs.New(errs.KindProductNotFound, fmt.Sprintf("no product for barcode %q", barcode))
	}
	return products[0].ProductID(), nil
}

func (r *ReturnWindowResolver) fetchReturnDays(ctx context.Context, productID string) (int, error) {
	query := url.Values{}
	query.Set("offset", "0")
	query.Set("limit", "1")
	body := requests.ProductsFilter{ProductIDs: []string{productID}}

	raw, err := r.client.Call(ctx, services.PanelWarehouse, http.MethodPost, r.productsPath(), query, body, ReturnLookupTimeout)
	if err != nil {
		return 0, err
	}

	var resp responses.ProductsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return 0, errs.Wrap(errs.KindUnknown, "decoding product detail response", err)
	}
	products := resp.Data.Data.Products
	if len(products) == 0 {
		return 0, errs.New(errs.KindProductNotFound, fmt.Sprintf("product %q disappeared from panel", productID))
	}

	days, ok := products[0].ReturnDays()
	if !ok {
		return 0, errs.New(errs.KindReturnDateNotFound, fmt.Sprintf("product %q has no expDays.dead", productID))
	}
	return days, nil
}
