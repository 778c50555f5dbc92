package requests

// StocksRequest -- тело POST /stocks retail-панели.
type StocksRequest struct {
	WarehouseIDs []string       `json:"warehouseIds"`
	ProductIDs   []string       `json:"productIds,omitempty"`
	Sort         map[string]int `json:"sort"`
}

// NewStocksRequest собирает запрос остатков по складам, отсортированный
// по возрастанию available -- так листается каталог в медленном пути.
func NewStocksRequest(warehouseIDs []string, productIDs ...string) StocksRequest {
	return StocksRequest{
		WarehouseIDs: warehouseIDs,
		ProductIDs:   productIDs,
		Sort:         map[string]int{"available": 1},
	}
}
