package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/snowpeak-resort/station-api/internal/auth"
	"github.com/snowpeak-resort/station-api/internal/config"
	"github.com/snowpeak-resort/station-api/internal/database"
	"github.com/snowpeak-resort/station-api/internal/handlers"
	"github.com/snowpeak-resort/station-api/internal/notifier"
	"github.com/snowpeak-resort/station-api/internal/registration"
	"github.com/snowpeak-resort/station-api/internal/subscription"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Core services
	engine := registration.NewEngine(db, nil)
	subscriptionService := subscription.NewService(db)

	// Ops notifier (reports still run without it)
	var reportsNotifier subscription.Notifier
	if cfg.DiscordBotToken != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			log.Printf("Discord notifier not initialized: %v", err)
		} else {
			reportsNotifier = notifier.NewDiscordNotifier(session, cfg.DiscordReportsChannelID)
		}
	}

	// Scheduled reports
	scheduler := subscription.NewScheduler(subscriptionService, reportsNotifier, subscription.SchedulerConfig{
		ExpiringInterval: cfg.ExpiringReportInterval,
		RevenueInterval:  cfg.RevenueReportInterval,
	})
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, db)
	h := handlers.Handlers{
		Registration: handlers.NewRegistrationHandler(engine),
		Subscription: handlers.NewSubscriptionHandler(subscriptionService),
		Skier:        handlers.NewSkierHandler(db),
		Course:       handlers.NewCourseHandler(db),
		Instructor:   handlers.NewInstructorHandler(db),
		Piste:        handlers.NewPisteHandler(db),
		APIKey:       handlers.NewAPIKeyHandler(db),
	}

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, authHandler, h)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
