package main

import (
	"log/slog"
	"net/http"
	"os"

	"returns/cmd"
	httpin "returns/internal/adapters/in/http"
	"returns/internal/adapters/out/postgres/caserepo"
	"returns/internal/adapters/out/postgres/idemrepo"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// TranslateError maps driver errors to gorm sentinels; the idempotency
	// ledger relies on gorm.ErrDuplicatedKey.
	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&caserepo.CaseDTO{}, &idemrepo.IdempotencyRecordDTO{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	// A .env file is optional; variables from the environment win.
	_ = godotenv.Load(".env")

	var config cmd.Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	return config
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateCaseCommandHandler(),
		app.CreateLaunchExchangeCommandHandler(),
		app.CreateCreateExchangeParcelCommandHandler(),
		app.CreateConvertToReturnCommandHandler(),
		app.CreateCloseCaseCommandHandler(),
		app.CreateUpdateReverseTrackCommandHandler(),
		app.CreateConfirmReceiptCommandHandler(),
		app.CreateGetCaseQueryHandler(),
		app.CreateGetCaseHistoryQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start("0.0.0.0:" + port))
}
