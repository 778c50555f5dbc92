package get

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"stocktracker_api/config/values"
	"stocktracker_api/internal/platform/business/dto/requests"
	"stocktracker_api/internal/platform/business/dto/responses"
	"stocktracker_api/internal/platform/business/errs"
	"stocktracker_api/internal/platform/business/services"
	"stocktracker_api/metrics"
	"stocktracker_api/pkg/logger"
)

const (
	FastPathTimeout = 10 * time.Second
	SlowPathTimeout = 60 * time.Second

	// Медленный путь -- листание каталога без фильтра. Полный перебор
	// миллионов записей в интерактивный запрос не укладывается, поэтому
	// поиск best-effort: жесткий потолок страниц, дальше честное "не нашли".
	ScanPageSize = 1000
	ScanMaxPages = 10
)

const stocksPath = "/stocks"

// StockResolver отвечает на вопрос "сколько единиц доступно по штрихкоду".
// Известный товар -- один точечный вызов; неизвестный -- ограниченное
// листание каталога.
type StockResolver struct {
	client services.CatalogCaller
	index  BarcodeIndex
	values values.PlatformValues
	// лимитер только на листание: быстрый путь не троттлим,
	// интерактивная задержка важнее
	limiter *rate.Limiter
	sfg     singleflight.Group
	log     logger.Logger
}

func NewStockResolver(client services.CatalogCaller, index BarcodeIndex, vals values.PlatformValues, writer io.Writer) *StockResolver {
	_log := logger.NewLogger(writer, "[StockResolver]")
	return &StockResolver{
		client:  client,
		index:   index,
		values:  vals,
		limiter: rate.NewLimiter(rate.Every(time.Minute/100), 10),
		log:     _log,
	}
}

// Resolve возвращает доступный остаток либо nil -- "штрихкода нет в каталоге".
// Ошибки панели уходят наверх как есть, в nil они не сворачиваются:
// вызывающий должен отличать "нет на складе" от "не смогли выяснить".
func (r *StockResolver) Resolve(ctx context.Context, barcode string) (*int, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, nil
	}

	// одинаковые одновременные запросы схлопываем в один полет
	v, err, _ := r.sfg.Do(barcode, func() (interface{}, error) {
		mapping, err := r.index.Get(ctx, barcode)
		if err != nil {
			// индекс -- только ускоритель; его отказ деградирует в листание
			r.log.Log("barcode index read failed for %q: %v", barcode, err)
			mapping = nil
		}
		if mapping != nil && mapping.ProductID != "" {
			return r.fastPath(ctx, mapping.ProductID)
		}
		return r.slowScan(ctx, barcode)
	})
	if err != nil {
		return nil, err
	}
	return v.(*int), nil
}

func (r *StockResolver) fastPath(ctx context.Context, productID string) (*int, error) {
	query := url.Values{}
	query.Set("limit", "1")
	query.Set("offset", "0")
	body := requests.NewStocksRequest(r.values.StockWarehouseIDs, productID)

	raw, err := r.client.Call(ctx, services.PanelRetail, http.MethodPost, stocksPath, query, body, FastPathTimeout)
	if err != nil {
		return nil, err
	}

	var resp responses.StocksResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errs.Wrap(errs.KindUnknown, "decoding stocks response", err)
	}
	if len(resp.Data) == 0 {
		// пустая выборка -- это "товара нет", а не ошибка
		return nil, nil
	}
	qty := resp.Data[0].AvailableCount()
	return &qty, nil
}

func (r *StockResolver) slowScan(ctx context.Context, barcode string) (*int, error) {
	ctx, cancel := context.WithTimeout(ctx, SlowPathTimeout)
	defer cancel()

	pages := 0
	defer func() { metrics.RecordScanPages(pages) }()

	offset := 0
	for pages < ScanMaxPages {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, errs.Wrap(errs.KindTimeout, "catalog scan deadline exhausted", err)
		}

		query := url.Values{}
		query.Set("limit", strconv.Itoa(ScanPageSize))
		query.Set("offset", strconv.Itoa(offset))
		body := requests.NewStocksRequest(r.values.StockWarehouseIDs)

		raw, err := r.client.Call(ctx, services.PanelRetail, http.MethodPost, stocksPath, query, body, SlowPathTimeout)
		if err != nil {
			return nil, err
		}
		pages++

		var resp responses.StocksResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, errs.Wrap(errs.KindUnknown, "decoding stocks page", err)
		}
		if len(resp.Data) == 0 {
			break
		}

		for _, record := range resp.Data {
			if record.MatchesBarcode(barcode) {
				qty := record.AvailableCount()
				r.log.Log("barcode %q found on page %d (offset %d)", barcode, pages, offset)
				return &qty, nil
			}
		}

		offset += len(resp.Data)
		if resp.Total > 0 && offset >= resp.Total {
			break
		}
	}

	r.log.Log("barcode %q not found after %d pages", barcode, pages)
	return nil, nil
}
