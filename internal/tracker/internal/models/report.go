package models

import "time"

// ReportKind -- вид расхождения: недостача или излишек.
type ReportKind string

const (
	ReportMissing ReportKind = "missing"
	ReportExtra   ReportKind = "extra"
)

func (k ReportKind) Valid() bool {
	return k == ReportMissing || k == ReportExtra
}

// Report -- строка расхождения, записанная сменой при сверке полки.
type Report struct {
	ID          int64      `json:"id"`
	Kind        ReportKind `json:"kind"`
	Barcode     string     `json:"barcode"`
	ProductName string     `json:"productName,omitempty"`
	Quantity    int        `json:"quantity"`
	Comment     string     `json:"comment,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
