package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/app/background"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/config"
	deliveryhttp "github.com/Andy54411/the-freelancer-marketing-sub059/internal/delivery/http"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/delivery/http/handlers"
	publisher "github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/kafka"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/logger"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/metrics"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/migrate"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/payment"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/postgres"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/postgres/repository"
	escrowuc "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/escrow"
	payoutuc "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/payout"
	quoteuc "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/quote"
	timetrackinguc "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/timetracking"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	logger.Setup(cfg.LogConfig)
	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.EngineDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.EngineDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v\n", err)
		}
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	kafkaPublisher := publisher.NewDefaultKafkaPublisher(brokers)

	engineMetrics := metrics.NewEngineMetrics()

	// Init repositories
	quoteRepo := repository.NewDefaultQuoteRepository(db)
	orderRepo := repository.NewDefaultOrderRepository(db)
	escrowRepo := repository.NewDefaultEscrowRepository(db)
	timeEntryRepo := repository.NewDefaultTimeEntryRepository(db)
	approvalRepo := repository.NewDefaultApprovalRepository(db)
	payoutRepo := repository.NewDefaultPayoutRepository(db)
	payeeResolver := repository.NewDefaultPayeeResolver(db)

	// Init payment-processor client
	paymentClient := payment.NewHTTPPaymentClient(
		cfg.PaymentService.Address,
		time.Duration(cfg.PaymentService.TimeoutSeconds)*time.Second,
	)

	// Init usecases
	quoteUsecase := quoteuc.NewDefaultQuoteUsecase(quoteRepo, orderRepo, kafkaPublisher, engineMetrics)
	escrowUsecase := escrowuc.NewDefaultEscrowUsecase(
		escrowRepo,
		orderRepo,
		paymentClient,
		kafkaPublisher,
		engineMetrics,
		cfg.Escrow.PlatformFeeBps,
		cfg.Escrow.StuckPendingSeconds,
	)
	timeTrackingUsecase := timetrackinguc.NewDefaultTimeTrackingUsecase(
		timeEntryRepo,
		approvalRepo,
		orderRepo,
		kafkaPublisher,
		engineMetrics,
	)
	payoutUsecase := payoutuc.NewDefaultPayoutUsecase(
		payoutRepo,
		orderRepo,
		escrowRepo,
		timeEntryRepo,
		payeeResolver,
		paymentClient,
		kafkaPublisher,
		engineMetrics,
		cfg.Escrow.PayoutMaxAttempts,
		cfg.Escrow.StuckPendingSeconds,
	)

	// Background workers
	tasks := background.NewBackgroundTasks(escrowUsecase, payoutUsecase, cfg.Escrow.PayoutRetrySeconds)
	tasks.StartAll(context.Background())

	// HTTP server
	router := deliveryhttp.NewRouter(
		handlers.NewQuoteHandler(quoteUsecase),
		handlers.NewEscrowHandler(escrowUsecase),
		handlers.NewTimeTrackingHandler(timeTrackingUsecase),
		handlers.NewPayoutHandler(payoutUsecase),
		handlers.NewWebhookHandler(escrowUsecase, payoutUsecase),
	)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("engine started on %s\n", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
