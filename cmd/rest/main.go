package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workshop-wizard-be/internal/bootstrap"
	"workshop-wizard-be/internal/config"
	"workshop-wizard-be/internal/server"
	"workshop-wizard-be/internal/tracer"
	"workshop-wizard-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Tracer)

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.App.Environment == "production")
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 5. Start Background Services
	if err := container.ConsumerService.Consume(context.Background()); err != nil {
		log.Fatalf("Unable to start autosave consumer: %v", err)
	}
	if container.ActivityService != nil {
		if err := container.ActivityService.Start(); err != nil {
			log.Printf("Activity log disabled: %v", err)
		}
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go container.Hub.Run(hubCtx)

	// 6. Run Server
	srv := server.New(cfg, container)
	go func() {
		if err := srv.Run(); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}

	stopHub()

	// Pending autosaves are written before the connections go away.
	container.ConsumerService.Flush(ctx)
	container.Close()

	if err := shutdownTracer(ctx); err != nil {
		log.Printf("Tracer shutdown: %v", err)
	}
	_ = container.Logger.Sync()
}
