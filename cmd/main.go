package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"

	"wholesale/internal/audit"
	"wholesale/internal/catalog"
	"wholesale/internal/config"
	"wholesale/internal/db"
	"wholesale/internal/kafka"
	taskprocessor "wholesale/internal/processor"
	"wholesale/internal/repository"
	"wholesale/internal/server"
	"wholesale/internal/service"
)

func main() {
	cfg := config.LoadConfig()

	database, err := db.NewDB(cfg.DSN, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Error in connection to db: %v", err)
	}
	defer database.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	supplierRepo := repository.NewSupplierRepository(database)
	orderRepo := repository.NewOrderRepository(database)
	issueRepo := repository.NewIssueRepository(database)
	taskRepo := repository.NewPostgresTaskRepository(database)

	cat := catalog.New()
	if err := cat.Refresh(supplierRepo); err != nil {
		log.Fatalf("Error loading catalog: %v", err)
	}
	go cat.StartAutoRefresh(ctx, supplierRepo, time.Minute)

	auditPool := audit.NewAuditWorkerPool(
		audit.AuditPoolConfig{BatchSize: 10, Timeout: 2 * time.Second, ChannelSize: 100},
		audit.NewDBProcessor(database),
		&audit.StdoutProcessor{Filter: cfg.FilterWord},
	)
	auditPool.Start(ctx, 2)

	producer, err := kafka.NewSaramaProducer(cfg.KafkaBrokers)
	if err != nil {
		log.Printf("Kafka producer unavailable, audit outbox stays queued: %v", err)
	} else {
		defer producer.Close()
		processor := taskprocessor.NewTaskProcessor(taskRepo, producer, cfg.KafkaTopic, 3*time.Second, 50)
		go processor.Start(ctx)

		consumerCfg := sarama.NewConfig()
		consumerCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
		go kafka.StartSaramaConsumer(ctx, consumerCfg, cfg.KafkaBrokers, cfg.KafkaGroupID, []string{cfg.KafkaTopic})
	}

	checkout := service.NewCheckoutService(orderRepo, issueRepo, cat, taskRepo, auditPool)

	srv := server.NewServer(supplierRepo, orderRepo, issueRepo, checkout, auditPool, cfg)

	if err := srv.Run(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
