package values

type Config interface {
}

// PlatformValues -- значения по умолчанию для запросов к панелям платформы.
type PlatformValues struct {
	// склады, по которым считаем доступные остатки в retail-панели
	StockWarehouseIDs []string `yaml:"stock-warehouse-ids"`
	// идентификатор склада в путях warehouse-панели
	WarehouseID string `yaml:"warehouse-id"`
	CountryCode string `yaml:"country-code"`
	Language    string `yaml:"language"`
	ClientID    string `yaml:"client-id"`
}
