package requests

// ProductsFilter -- тело POST /warehouse/{id}/products: поиск по штрихкодам
// либо выборка карточек по идентификаторам.
type ProductsFilter struct {
	Barcodes   []string `json:"barcodes,omitempty"`
	ProductIDs []string `json:"productIds,omitempty"`
}
