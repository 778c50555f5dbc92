package app

import (
	"context"
	"io"
	"time"

	"stocktracker_api/config"
	"stocktracker_api/internal/tracker/app/web"
	"stocktracker_api/internal/tracker/app/web/handlers"
	"stocktracker_api/internal/tracker/internal/business"
	"stocktracker_api/internal/tracker/internal/storage"
	platformstorage "stocktracker_api/internal/platform/storage"
	"stocktracker_api/pkg/business/service/csv_to_postgres"
	"stocktracker_api/pkg/dbconnect"
	"stocktracker_api/pkg/dbconnect/migration"
	"stocktracker_api/pkg/logger"
	"stocktracker_api/pkg/notify"
	"stocktracker_api/pkg/redisconnect"
)

const trackerAddr = ":8081"

// TrackerServer обслуживает каталог магазина и журнал расхождений.
type TrackerServer struct {
	dbconnect.Database
	cfg    *config.AppConfig
	log    logger.Logger
	writer io.Writer
}

func NewTrackerServer(connector dbconnect.Database, cfg *config.AppConfig, writer io.Writer) *TrackerServer {
	_log := logger.NewLogger(writer, "[TrackerServer]")
	return &TrackerServer{Database: connector, cfg: cfg, log: _log, writer: writer}
}

func (s *TrackerServer) Run() {
	db, err := s.Connect()
	if err != nil {
		s.log.FatalLog("Error connecting to PostgreSQL: %s", err)
	}

	migrationApply := []migration.MigrationInterface{
		&platformstorage.MigrationsSchema{},
		&storage.TrackerSchema{},
		&storage.TrackerMetadata{},
		&storage.TrackerProducts{},
		&storage.TrackerReports{},
	}
	for _, _migration := range migrationApply {
		if err := _migration.UpMigration(db); err != nil {
			s.log.FatalLog("Migration failed: %v", err)
		}
	}
	s.log.Log("Tracker migrations applied successfully!")

	rdb, err := redisconnect.NewRedisClient(&s.cfg.Redis)
	if err != nil {
		s.log.FatalLog("Error connecting to Redis: %s", err)
	}

	// импорт каталога подключается только при заданном источнике
	var updater *csv_to_postgres.Updater
	if s.cfg.Catalog.CSVURL != "" && s.cfg.Catalog.InfURL != "" {
		updater = csv_to_postgres.NewUpdater(
			s.cfg.Catalog.InfURL,
			s.cfg.Catalog.CSVURL,
			"catalog_csv",
			csv_to_postgres.NewHTTPFetcher(),
			csv_to_postgres.NewProcessor(storage.CatalogColumns),
			csv_to_postgres.NewPostgresUpdater(db, "tracker", "products", storage.CatalogColumns, "barcode"),
		)
	}

	productRepo := storage.NewProductRepository(db, updater)
	reportRepo := storage.NewReportRepository(db)
	index := platformstorage.NewBarcodeIndexClient(rdb, s.writer)

	productService := business.NewProductService(productRepo, index, s.writer)
	reportService := business.NewReportService(reportRepo, productRepo,
		notify.NewTelegramNotifier(s.cfg.Telegram, s.writer), s.writer)

	startCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	if err := productRepo.Update(startCtx); err != nil {
		// каталог обновим при следующем запуске, сервис живёт со старым
		s.log.Log("catalog import failed: %v", err)
	} else if _, err := productService.SyncBarcodeIndex(startCtx); err != nil {
		s.log.Log("barcode index sync failed: %v", err)
	}
	cancel()

	web.SetupRoutes(
		trackerAddr,
		handlers.NewProductHandler(productService, s.writer),
		handlers.NewReportHandler(reportService, s.writer),
	)
}
