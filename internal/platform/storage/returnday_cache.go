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

const returnDaysPrefix = "return_days:"

// ReturnDayCacheClient -- персистентный кэш срока возврата поставщику.
// Записи живут без TTL: остатки меняются быстро, срок возврата -- нет.
type ReturnDayCacheClient struct {
	rdb *redis.Client
	log logger.Logger
}

func NewReturnDayCacheClient(rdb *redis.Client, writer io.Writer) *ReturnDayCacheClient {
	_log := logger.NewLogger(writer, "[ReturnDayCache]")
	return &ReturnDayCacheClient{rdb: rdb, log: _log}
}

func (c *ReturnDayCacheClient) key(barcode string) string {
	return returnDaysPrefix + strings.TrimSpace(barcode)
}

func (c *ReturnDayCacheClient) Get(ctx context.Context, barcode string) (*models.ReturnDayEntry, error) {
	val, err := c.rdb.Get(ctx, c.key(barcode)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("return-day cache get: %w", err)
	}

	var entry models.ReturnDayEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, fmt.Errorf("return-day cache decode: %w", err)
	}
	return &entry, nil
}

func (c *ReturnDayCacheClient) Put(ctx context.Context, barcode string, days int) error {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return fmt.Errorf("return-day cache put: empty barcode")
	}
	if days < 0 {
		days = 0
	}

	entry := models.ReturnDayEntry{
		Barcode:   barcode,
		Days:      days,
		UpdatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("return-day cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, c.key(barcode), data, 0).Err(); err != nil {
		return fmt.Errorf("return-day cache set: %w", err)
	}
	return nil
}
