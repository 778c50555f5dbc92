package app

import (
	"io"

	"stocktracker_api/config"
	"stocktracker_api/internal/platform/app/web"
	"stocktracker_api/internal/platform/app/web/handlers"
	"stocktracker_api/internal/platform/business/services"
	"stocktracker_api/internal/platform/business/services/get"
	"stocktracker_api/internal/platform/storage"
	"stocktracker_api/pkg/dbconnect"
	"stocktracker_api/pkg/dbconnect/migration"
	"stocktracker_api/pkg/logger"
	"stocktracker_api/pkg/redisconnect"
)

const platformAddr = ":8080"

// PlatformServer поднимает пайплайн разрешения внешних метаданных:
// резолверы остатков и сроков возврата плюс CRUD токенов.
type PlatformServer struct {
	dbconnect.Database
	cfg    *config.AppConfig
	log    logger.Logger
	writer io.Writer
}

func NewPlatformServer(connector dbconnect.Database, cfg *config.AppConfig, writer io.Writer) *PlatformServer {
	_log := logger.NewLogger(writer, "[PlatformServer]")
	return &PlatformServer{Database: connector, cfg: cfg, log: _log, writer: writer}
}

func (s *PlatformServer) Run() {
	db, err := s.Connect()
	if err != nil {
		s.log.FatalLog("Error connecting to PostgreSQL: %s", err)
	}

	migrationApply := []migration.MigrationInterface{
		&storage.MigrationsSchema{},
		&storage.PlatformSchema{},
		&storage.PlatformTokens{},
	}
	for _, _migration := range migrationApply {
		if err := _migration.UpMigration(db); err != nil {
			s.log.FatalLog("Migration failed: %v", err)
		}
	}
	s.log.Log("Platform migrations applied successfully!")

	rdb, err := redisconnect.NewRedisClient(&s.cfg.Redis)
	if err != nil {
		s.log.FatalLog("Error connecting to Redis: %s", err)
	}

	// все хэндлы строятся явно и передаются внутрь: у каждого компонента
	// свой жизненный цикл, в тестах все они подменяемы
	tokenRepo := storage.NewTokenRepository(db, s.writer)
	catalogClient := services.NewCatalogClient(s.cfg.Platform, tokenRepo, s.writer)
	index := storage.NewBarcodeIndexClient(rdb, s.writer)
	cache := storage.NewReturnDayCacheClient(rdb, s.writer)

	stockResolver := get.NewStockResolver(catalogClient, index, s.cfg.Platform.Values, s.writer)
	returnResolver := get.NewReturnWindowResolver(catalogClient, index, cache, s.cfg.Platform.Values, s.writer)

	web.SetupRoutes(
		platformAddr,
		handlers.NewStockHandler(stockResolver, s.writer),
		handlers.NewReturnDateHandler(returnResolver, s.writer),
		handlers.NewTokenHandler(tokenRepo, s.writer),
	)
}
