package responses

import (
	"encoding/json"
	"strings"
)

// StocksResponse -- ответ retail-панели на POST /stocks.
type StocksResponse struct {
	Data  []StockRecord `json:"data"`
	Total int           `json:"total"`
}

type StockRecord struct {
	ProductID     FlexString                 `json:"productId"`
	Available     FlexInt                    `json:"available"`
	PackagingInfo map[string]json.RawMessage `json:"packagingInfo"`
}

type PackagingTier struct {
	Barcodes []string `json:"barcodes"`
}

// pickingType лежит в packagingInfo рядом с ярусами упаковки, но ярусом не является.
const packagingMetaKey = "pickingType"

// AvailableCount возвращает доступный остаток; отсутствующее или кривое поле -- 0.
func (r StockRecord) AvailableCount() int {
	if !r.Available.OK || r.Available.Value < 0 {
		return 0
	}
	return r.Available.Value
}

// MatchesBarcode проверяет штрихкоды всех ярусов упаковки на точное совпадение.
// barcode должен быть уже обрезан; штрихкоды ярусов сравниваем как есть и
// с обрезкой -- платформа иногда отдает их с хвостовыми пробелами.
func (r StockRecord) MatchesBarcode(barcode string) bool {
	for key, raw := range r.PackagingInfo {
		if key == packagingMetaKey {
			continue
		}
		var tier PackagingTier
		if err := json.Unmarshal(raw, &tier); err != nil {
			continue
		}
		for _, bc := range tier.Barcodes {
			if bc == barcode || strings.TrimSpace(bc) == barcode {
				return true
			}
		}
	}
	return false
}
