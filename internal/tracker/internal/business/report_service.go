package business

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"stocktracker_api/internal/tracker/internal/models"
	"stocktracker_api/internal/tracker/internal/models/requests"
	"stocktracker_api/internal/tracker/internal/storage"
	"stocktracker_api/pkg/logger"
	"stocktracker_api/pkg/notify"
)

type ReportService struct {
	repo     *storage.ReportRepository
	products *storage.ProductRepository
	notifier notify.Notifier
	log      logger.Logger
}

func NewReportService(repo *storage.ReportRepository, products *storage.ProductRepository, notifier notify.Notifier, writer io.Writer) *ReportService {
	_log := logger.NewLogger(writer, "[ReportService]")
	return &ReportService{repo: repo, products: products, notifier: notifier, log: _log}
}

// Submit записывает расхождение и уведомляет смену. Уведомление --
// fire-and-forget: очередь в телеграме не должна задерживать сверку.
func (s *ReportService) Submit(ctx context.Context, req requests.ReportRequest) (*models.Report, error) {
	kind := models.ReportKind(strings.TrimSpace(req.Kind))
	if !kind.Valid() {
		return nil, errors.New(`kind must be "missing" or "extra"`)
	}
	barcode := strings.TrimSpace(req.Barcode)
	if barcode == "" {
		return nil, errors.New("empty barcode")
	}
	if req.Quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}

	report := models.Report{
		Kind:     kind,
		Barcode:  barcode,
		Quantity: req.Quantity,
		Comment:  strings.TrimSpace(req.Comment),
	}

	// имя из каталога, если позиция известна
	if product, err := s.products.GetByBarcode(ctx, barcode); err == nil && product != nil {
		report.ProductName = product.Name
	}

	id, err := s.repo.Insert(ctx, report)
	if err != nil {
		return nil, err
	}
	report.ID = id
	report.CreatedAt = time.Now()

	go s.notifySubmitted(report)

	return &report, nil
}

func (s *ReportService) List(ctx context.Context, limit, offset int) ([]models.Report, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *ReportService) notifySubmitted(report models.Report) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	label := "недостача"
	if report.Kind == models.ReportExtra {
		label = "излишек"
	}
	name := report.ProductName
	if name == "" {
		name = "неизвестный товар"
	}
	text := fmt.Sprintf("%s: %s (штрихкод %s), %d шт.", label, name, report.Barcode, report.Quantity)
	if report.Comment != "" {
		text += "\n" + report.Comment
	}

	if err := s.notifier.Notify(ctx, text); err != nil {
		s.log.Log("notification failed for report %d: %v", report.ID, err)
	}
}
