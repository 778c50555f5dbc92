package requests

type ReportRequest struct {
	Kind     string `json:"kind"`
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity"`
	Comment  string `json:"comment"`
}
