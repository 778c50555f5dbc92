package business

import (
	"context"
	"errors"
	"io"
	"strings"

	platformmodels "stocktracker_api/internal/platform/business/models"
	"stocktracker_api/internal/tracker/internal/models"
	"stocktracker_api/internal/tracker/internal/storage"
	"stocktracker_api/pkg/logger"
)

// BarcodeIndexWriter -- запись в индекс штрихкод -> товар платформы.
// Это единственное место, откуда индекс наполняется: резолверы его
// только читают.
type BarcodeIndexWriter interface {
	Put(ctx context.Context, mapping platformmodels.BarcodeMapping) error
}

type ProductService struct {
	repo  *storage.ProductRepository
	index BarcodeIndexWriter
	log   logger.Logger
}

func NewProductService(repo *storage.ProductRepository, index BarcodeIndexWriter, writer io.Writer) *ProductService {
	_log := logger.NewLogger(writer, "[ProductService]")
	return &ProductService{repo: repo, index: index, log: _log}
}

func (s *ProductService) GetByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, errors.New("empty barcode")
	}
	return s.repo.GetByBarcode(ctx, barcode)
}

func (s *ProductService) List(ctx context.Context, limit, offset int) ([]models.Product, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// Save сохраняет позицию каталога; если известен идентификатор товара
// платформы, попутно обновляется barcode index.
func (s *ProductService) Save(ctx context.Context, product models.Product) error {
	product.Barcode = strings.TrimSpace(product.Barcode)
	if product.Barcode == "" {
		return errors.New("empty barcode")
	}
	if product.Name == "" {
		return errors.New("empty product name")
	}

	if err := s.repo.Upsert(ctx, product); err != nil {
		return err
	}

	if product.PlatformProductID != "" {
		err := s.index.Put(ctx, platformmodels.BarcodeMapping{
			Barcode:     product.Barcode,
			ProductID:   product.PlatformProductID,
			ProductName: product.Name,
		})
		if err != nil {
			// индекс -- ускоритель, его отказ не валит сохранение
			s.log.Log("barcode index write failed for %q: %v", product.Barcode, err)
		}
	}
	return nil
}

// SyncBarcodeIndex наполняет индекс из каталога после массового импорта.
func (s *ProductService) SyncBarcodeIndex(ctx context.Context) (int, error) {
	products, err := s.repo.AllWithPlatformID(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, product := range products {
		err := s.index.Put(ctx, platformmodels.BarcodeMapping{
			Barcode:     product.Barcode,
			ProductID:   product.PlatformProductID,
			ProductName: product.Name,
		})
		if err != nil {
			s.log.Log("barcode index write failed for %q: %v", product.Barcode, err)
			continue
		}
		synced++
	}
	s.log.Log("barcode index synced: %d of %d mappings", synced, len(products))
	return synced, nil
}
