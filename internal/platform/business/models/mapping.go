package models

import "time"

// BarcodeMapping -- запись индекса штрихкод -> идентификатор товара платформы.
// Не больше одной записи на штрихкод; штрихкод всегда обрезан перед
// использованием как ключ. Резолверы индекс только читают, пишет его
// массовый импорт каталога.
type BarcodeMapping struct {
	Barcode     string    `json:"barcode"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ReturnDayEntry -- кэш срока возврата поставщику. TTL нет сознательно:
// устаревание -- известное и принятое свойство, запись перезаписывается
// при следующем успешном разрешении.
type ReturnDayEntry struct {
	Barcode   string    `json:"barcode"`
	Days      int       `json:"days"`
	UpdatedAt time.Time `json:"updatedAt"`
}
