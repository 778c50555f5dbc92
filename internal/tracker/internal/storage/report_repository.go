package storage

import (
	"context"
	"database/sql"
	"fmt"

	"stocktracker_api/internal/tracker/internal/models"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Insert(ctx context.Context, report models.Report) (int64, error) {
	query := `
		INSERT INTO tracker.reports (kind, barcode, product_name, quantity, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		string(report.Kind), report.Barcode, report.ProductName,
		report.Quantity, report.Comment).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert report: %w", err)
	}
	return id, nil
}

func (r *ReportRepository) List(ctx context.Context, limit, offset int) ([]models.Report, error) {
	query := `SELECT id, kind, barcode, product_name, quantity, comment, created_at
			  FROM tracker.reports ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса расхождений: %w", err)
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		var report models.Report
		var kind string
		var productName, comment sql.NullString
		if err := rows.Scan(&report.ID, &kind, &report.Barcode, &productName,
			&report.Quantity, &comment, &report.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования расхождения: %w", err)
		}
		report.Kind = models.ReportKind(kind)
		report.ProductName = productName.String
		report.Comment = comment.String
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return reports, nil
}
