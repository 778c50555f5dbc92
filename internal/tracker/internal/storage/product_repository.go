package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"stocktracker_api/internal/tracker/internal/models"
	"stocktracker_api/pkg/business/service/csv_to_postgres"
)

// Колонки CSV-выгрузки каталога; порядок фиксирован поставщиком файла.
var CatalogColumns = []string{"barcode", "name", "brand", "category", "platform_product_id"}

type ProductRepository struct {
	db      *sql.DB
	updater *csv_to_postgres.Updater
}

func NewProductRepository(db *sql.DB, updater *csv_to_postgres.Updater) *ProductRepository {
	log.Printf("ProductRepository successfully created.")
	return &ProductRepository{
		db:      db,
		updater: updater,
	}
}

// Update перезаливает каталог из CSV-файла, если выгрузка обновилась.
func (r *ProductRepository) Update(ctx context.Context) error {
	if r.updater == nil {
		return nil
	}
	return r.updater.Execute(ctx, r.db)
}

func (r *ProductRepository) GetByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	query := `SELECT barcode, name, brand, category, platform_product_id, created_at, updated_at
			  FROM tracker.products WHERE barcode = $1`

	var product models.Product
	var brand, category, platformID sql.NullString
	err := r.db.QueryRowContext(ctx, query, strings.TrimSpace(barcode)).Scan(
		&product.Barcode, &product.Name, &brand, &category, &platformID,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	product.Brand = brand.String
	product.Category = category.String
	product.PlatformProductID = platformID.String

	return &product, nil
}

func (r *ProductRepository) Upsert(ctx context.Context, product models.Product) error {
	query := `
		INSERT INTO tracker.products (barcode, name, brand, category, platform_product_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, current_timestamp)
		ON CONFLICT (barcode) DO UPDATE
		SET
			name = EXCLUDED.name,
			brand = EXCLUDED.brand,
			category = EXCLUDED.category,
			platform_product_id = EXCLUDED.platform_product_id,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		strings.TrimSpace(product.Barcode), product.Name, product.Brand,
		product.Category, product.PlatformProductID)
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]models.Product, error) {
	query := `SELECT barcode, name, brand, category, platform_product_id, created_at, updated_at
			  FROM tracker.products ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса каталога: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		var brand, category, platformID sql.NullString
		if err := rows.Scan(&product.Barcode, &product.Name, &brand, &category,
			&platformID, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования товара: %w", err)
		}
		product.Brand = brand.String
		product.Category = category.String
		product.PlatformProductID = platformID.String
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return products, nil
}

// AllWithPlatformID возвращает позиции, у которых известен идентификатор
// товара платформы -- из них наполняется barcode index.
func (r *ProductRepository) AllWithPlatformID(ctx context.Context) ([]models.Product, error) {
	query := `SELECT barcode, name, platform_product_id
			  FROM tracker.products
			  WHERE platform_product_id IS NOT NULL AND platform_product_id <> ''`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса индексируемых товаров: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		if err := rows.Scan(&product.Barcode, &product.Name, &product.PlatformProductID); err != nil {
			return nil, fmt.Errorf("ошибка сканирования товара: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return products, nil
}
