package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stocktracker_api/internal/platform/business/models"
	"stocktracker_api/pkg/logger"
)

const barcodeIndexPrefix = "barcode_index:"

// BarcodeIndexClient -- клиент персистентного индекса штрихкод -> товар
// платформы. Хранение и вытеснение -- забота движка, здесь только контракт
// get/put.
type BarcodeIndexClient struct {
	rdb *redis.Client
	log logger.Logger
}

func NewBarcodeIndexClient(rdb *redis.Client, writer io.Writer) *BarcodeIndexClient {
	_log := logger.NewLogger(writer, "[BarcodeIndex]")
	return &BarcodeIndexClient{rdb: rdb, log: _log}
}

func (c *BarcodeIndexClient) key(barcode string) string {
	return barcodeIndexPrefix + strings.TrimSpace(barcode)
}

func (c *BarcodeIndexClient) Get(ctx context.Context, barcode string) (*models.BarcodeMapping, error) {
	val, err := c.rdb.Get(ctx, c.key(barcode)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("barcode index get: %w", err)
	}

	var mapping models.BarcodeMapping
	if err := json.Unmarshal([]byte(val), &mapping); err != nil {
		return nil, fmt.Errorf("barcode index decode: %w", err)
	}
	return &mapping, nil
}

// Put перезаписывает отображение, сохраняя createdAt существующей записи.
// Вызывается массовым импортом каталога, не резолверами.
func (c *BarcodeIndexClient) Put(ctx context.Context, mapping models.BarcodeMapping) error {
	mapping.Barcode = strings.TrimSpace(mapping.Barcode)
	if mapping.Barcode == "" || mapping.ProductID == "" {
		return fmt.Errorf("barcode index put: empty barcode or product id")
	}

	now := time.Now().UTC()
	mapping.UpdatedAt = now
	mapping.CreatedAt = now
	if existing, err := c.Get(ctx, mapping.Barcode); err == nil && existing != nil {
		mapping.CreatedAt = existing.CreatedAt
	}

	data, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("barcode index encode: %w", err)
	}
	if err := c.rdb.Set(ctx, c.key(mapping.Barcode), data, 0).Err(); err != nil {
		return fmt.Errorf("barcode index set: %w", err)
	}
	return nil
}
