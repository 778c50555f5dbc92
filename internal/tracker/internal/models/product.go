package models

import "time"

// Product -- позиция каталога магазина. Каталог заливается массовым
// импортом CSV и правится вручную через CRUD.
type Product struct {
	Barcode           string    `json:"barcode"`
	Name              string    `json:"name"`
	Brand             string    `json:"brand,omitempty"`
	Category          string    `json:"category,omitempty"`
	PlatformProductID string    `json:"platformProductId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
