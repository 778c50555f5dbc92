package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"stocktracker_api/internal/platform/business/services"
	"stocktracker_api/pkg/logger"
)

// TokenRepository хранит bearer-токены панелей, которые приносит
// расширение-перехватчик через CRUD-эндпоинты. Реализует
// services.CredentialSource для пайплайна.
type TokenRepository struct {
	db  *sql.DB
	log logger.Logger
}

func NewTokenRepository(db *sql.DB, writer io.Writer) *TokenRepository {
	_log := logger.NewLogger(writer, "[TokenRepository]")
	return &TokenRepository{db: db, log: _log}
}

type TokenInfo struct {
	Panel     string    `json:"panel"`
	Token     string    `json:"token"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Token возвращает актуальный токен панели; пустая строка -- токена нет.
func (r *TokenRepository) Token(ctx context.Context, panel services.Panel) (string, error) {
	query := `SELECT token FROM platform.tokens WHERE panel = $1`

	var token string
	err := r.db.QueryRowContext(ctx, query, string(panel)).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get token for panel %q: %w", panel, err)
	}
	return token, nil
}

// Save перезаписывает токен панели: токены короткоживущие, история не нужна.
func (r *TokenRepository) Save(ctx context.Context, panel services.Panel, token string) error {
	query := `
		INSERT INTO platform.tokens (panel, token, updated_at)
		VALUES ($1, $2, current_timestamp)
		ON CONFLICT (panel) DO UPDATE
		SET token = EXCLUDED.token, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query, string(panel), token); err != nil {
		return fmt.Errorf("failed to save token for panel %q: %w", panel, err)
	}
	r.log.Log("token for panel %q refreshed", panel)
	return nil
}

// List отдает состояние токенов для CRUD-эндпоинта; сами токены наружу
// не возвращаем, только хвост для опознания.
func (r *TokenRepository) List(ctx context.Context) ([]TokenInfo, error) {
	query := `SELECT panel, token, updated_at FROM platform.tokens ORDER BY panel`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	defer rows.Close()

	var infos []TokenInfo
	for rows.Next() {
		var info TokenInfo
		if err := rows.Scan(&info.Panel, &info.Token, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan token row: %w", err)
		}
		info.Token = maskToken(info.Token)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read token rows: %w", err)
	}
	return infos, nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return "****" + token[len(token)-8:]
}
