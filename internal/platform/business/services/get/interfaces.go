package get

import (
	"context"

	"stocktracker_api/internal/platform/business/models"
)

// Контракты key-value хранилища, какими их видят резолверы. Перечисления,
// удаления и вытеснение записей -- дело самого хранилища, нам не нужны.

// BarcodeIndex -- чтение индекса штрихкод -> товар платформы.
// nil, nil означает "записи нет".
type BarcodeIndex interface {
	Get(ctx context.Context, barcode string) (*models.BarcodeMapping, error)
}

// ReturnDayCache -- cache-aside для срока возврата поставщику.
type ReturnDayCache interface {
	Get(ctx context.Context, barcode string) (*models.ReturnDayEntry, error)
	Put(ctx context.Context, barcode string, days int) error
}
