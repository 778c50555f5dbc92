package requests

type ProductRequest struct {
	Barcode           string `json:"barcode"`
	Name              string `json:"name"`
	Brand             string `json:"brand"`
	Category          string `json:"category"`
	PlatformProductID string `json:"platformProductId"`
}
