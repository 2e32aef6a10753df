package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"dreamer-backend/internal/analysis"
	"dreamer-backend/internal/documents"
	"dreamer-backend/internal/extract"
	"dreamer-backend/internal/payments"
	"dreamer-backend/internal/payments/stripeclient"
	"dreamer-backend/internal/pricing"
	"dreamer-backend/internal/shared/config"
	"dreamer-backend/internal/shared/server"
	"dreamer-backend/internal/shared/storage/db"
	"dreamer-backend/internal/shared/storage/object"
	localstore "dreamer-backend/internal/shared/storage/object/local"
	s3store "dreamer-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	DocumentsRepo    documents.DocumentsRepo
	PaymentsRepo     payments.PaymentsRepo
	Intents          payments.IntentClient
	Analyzer         analysis.Analyzer
	DocumentsService *documents.Service
	PaymentsService  *payments.Service
	DocumentsHandler *documents.Handler
	PaymentsHandler  *payments.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:    app.Config,
		Documents: app.DocumentsHandler,
		Payments:  app.PaymentsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) error {
	cfg := app.Config

	var docRepo documents.DocumentsRepo
	var payRepo payments.PaymentsRepo
	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		payRepo = &payments.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		payRepo = payments.NewMemoryRepo()
	}

	intents := payments.IntentClient(placeholderIntents{})
	if strings.TrimSpace(cfg.StripeSecretKey) != "" {
		client, err := stripeclient.New(cfg.StripeSecretKey)
		if err != nil {
			return err
		}
		intents = client
	} else if !isDevLike(cfg.Env) {
		return errors.New("STRIPE_SECRET_KEY is required")
	}

	analyzer := analysis.Analyzer(analysis.Placeholder{})
	if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		openaiAnalyzer, err := analysis.NewOpenAIAnalyzer(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAITemperature, cfg.OpenAIMaxTokens)
		if err != nil {
			return err
		}
		analyzer = openaiAnalyzer
	}

	docSvc := &documents.Service{
		Store:             app.Store,
		Repo:              docRepo,
		Payments:          payRepo,
		Pipeline:          extract.NewPipeline(app.Store),
		Pricer:            pricing.Calculator{Tiers: pricing.DefaultTiers(), MinCharge: cfg.MinChargeCents},
		Intents:           intents,
		Currency:          cfg.Currency,
		AllowedExtensions: cfg.AllowedExtensions,
	}

	paySvc := &payments.Service{
		Intents:   intents,
		Documents: documents.DocumentSourceAdapter{Repo: docRepo},
		Repo:      payRepo,
		Store:     app.Store,
		Analyzer:  analyzer,
	}

	app.DocumentsRepo = docRepo
	app.PaymentsRepo = payRepo
	app.Intents = intents
	app.Analyzer = analyzer
	app.DocumentsService = docSvc
	app.PaymentsService = paySvc
	app.DocumentsHandler = documents.NewHandler(docSvc, cfg.MaxUploadBytes, cfg.StripePublishableKey)
	app.PaymentsHandler = payments.NewHandler(paySvc)

	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

// placeholderIntents stands in when no payment provider is configured.
type placeholderIntents struct{}

func (placeholderIntents) Create(ctx context.Context, amount int64, currency string) (payments.Intent, error) {
	_ = ctx
	_ = amount
	_ = currency
	return payments.Intent{}, errors.New("payment provider not configured")
}

func (placeholderIntents) Retrieve(ctx context.Context, intentID string) (payments.Intent, error) {
	_ = ctx
	_ = intentID
	return payments.Intent{}, errors.New("payment provider not configured")
}
