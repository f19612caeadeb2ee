package main

import (
	"context"
	"log"

	"nestegg/internal/domain/notify"
	"nestegg/internal/domain/revoke"
	"nestegg/internal/domain/summary"
	"nestegg/internal/domain/sync"
	"nestegg/internal/domain/vault"
	"nestegg/internal/infrastructure/aggregator"
	"nestegg/internal/infrastructure/crypto"
	"nestegg/internal/infrastructure/firebase"
	"nestegg/internal/infrastructure/postgres"
	httphandlers "nestegg/internal/interfaces/http"
	"nestegg/internal/shared/auth"
	"nestegg/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	ItemHandler    *httphandlers.ItemHandler
	SyncHandler    *httphandlers.SyncHandler
	SummaryHandler *httphandlers.SummaryHandler
	UserHandler    *httphandlers.UserHandler

	// Auth
	JWT *auth.JWT

	// Sync orchestrator (for scheduler)
	Orchestrator *sync.Orchestrator

	// Repositories (for scheduler job provider)
	ItemRepo *postgres.ItemRepository
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize encryptor for access credentials at rest
	encryptor, err := crypto.NewEncryptor(cfg.Encryption.Key)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Initialize repositories
	itemRepo := postgres.NewItemRepository(db, encryptor)
	accountRepo := postgres.NewAccountRepository(db)
	balanceRepo := postgres.NewBalanceHistoryRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	statusRepo := postgres.NewSyncStatusRepository(db)
	tokenRepo := postgres.NewDeviceTokenRepository(db)

	// Initialize aggregator client
	aggClient := aggregator.NewClient(cfg.Aggregator.BaseURL, cfg.Aggregator.ClientID, cfg.Aggregator.Secret)

	// Initialize push messaging (optional)
	var messenger notify.Messenger
	if cfg.Firebase.CredentialsFile != "" {
		fcmClient, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, tokenRepo.Deactivate)
		if err != nil {
			log.Printf("Warning: failed to initialize FCM client, push notifications disabled: %v", err)
		} else {
			messenger = fcmClient
		}
	}
	notifyService := notify.NewService(tokenRepo, messenger)

	// Initialize domain services
	vaultService := vault.NewService(itemRepo)
	accountSync := sync.NewAccountSyncService(aggClient, itemRepo, accountRepo, balanceRepo)
	transactionSync := sync.NewTransactionSyncService(aggClient, itemRepo, accountRepo, transactionRepo, statusRepo)
	orchestrator := sync.NewOrchestrator(accountSync, transactionSync, itemRepo, notifyService)
	summaryService := summary.NewService(transactionRepo)
	revokeService := revoke.NewService(aggClient, itemRepo, accountRepo, transactionRepo, statusRepo, tokenRepo, notifyService)

	// Initialize auth components
	jwt := auth.NewJWT(cfg.JWT.Secret)

	return &Dependencies{
		DB:             db,
		ItemHandler:    httphandlers.NewItemHandler(vaultService, revokeService),
		SyncHandler:    httphandlers.NewSyncHandler(accountSync, transactionSync, summaryService),
		SummaryHandler: httphandlers.NewSummaryHandler(summaryService),
		UserHandler:    httphandlers.NewUserHandler(revokeService, notifyService),
		JWT:            jwt,
		Orchestrator:   orchestrator,
		ItemRepo:       itemRepo,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
