package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/terraincognita07/tripplanner/internal/ai"
	"github.com/terraincognita07/tripplanner/internal/api"
	"github.com/terraincognita07/tripplanner/internal/cli"
	"github.com/terraincognita07/tripplanner/internal/db"
	"github.com/terraincognita07/tripplanner/internal/services"
	"github.com/terraincognita07/tripplanner/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("skipping .env: %v", err)
	}

	if len(os.Args) > 1 {
		if err := runCommand(os.Args[1], os.Args[2:]); err != nil {
			log.Fatalf("%s failed: %v", os.Args[1], err)
		}
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := serve(cfg); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func runCommand(name string, args []string) error {
	dbPath := resolveDBPath()

	switch name {
	case "grant-credits":
		flags := flag.NewFlagSet(name, flag.ContinueOnError)
		email := flags.String("email", "", "account email")
		credits := flags.Int("credits", 0, "paid credits to add")
		freeCredits := flags.Int("free", 0, "free credits to add")
		if err := flags.Parse(args); err != nil {
			return err
		}
		return cli.RunGrantCreditsCommand(dbPath, *email, *credits, *freeCredits, os.Stdout)
	case "reset-password":
		flags := flag.NewFlagSet(name, flag.ContinueOnError)
		email := flags.String("email", "", "account email")
		if err := flags.Parse(args); err != nil {
			return err
		}
		return cli.RunResetPasswordCommand(dbPath, *email, os.Stdin, os.Stdout)
	default:
		return fmt.Errorf("unknown command %q (expected grant-credits or reset-password)", name)
	}
}

func serve(cfg config) error {
	time.Local = cfg.Location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	repositories := db.NewRepositories(database)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	var completer ai.Completer
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiCompleter(lifecycleCtx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("ai init: %w", err)
		}
		defer gemini.Close()
		completer = gemini
	} else {
		log.Printf("GEMINI_API_KEY is not set, ai plan generation is disabled")
	}

	var fetcher weather.Fetcher
	if cfg.WeatherAPIKey != "" {
		fetcher = weather.NewOpenWeatherFetcher(cfg.WeatherBaseURL, cfg.WeatherAPIKey, cfg.WeatherTimeout)
	} else {
		log.Printf("WEATHER_API_KEY is not set, plans get synthetic weather")
	}

	credits := services.NewCreditService(repositories.Users)
	handler, err := api.NewHandler(cfg.SecretKey, api.Dependencies{
		Auth:    services.NewAuthService(repositories.Users, cfg.SignupFreeCredits),
		Credits: credits,
		Plans: services.NewPlanService(
			repositories.Plans,
			repositories.Accesses,
			credits,
			ai.NewGenerator(completer, cfg.AITimeout),
			weather.NewService(fetcher, cfg.WeatherTimeout),
			services.CreditPolicy{ChargeOnFallback: cfg.ChargeOnFallback},
		),
		Invites: services.NewInviteService(repositories.Plans, repositories.Accesses, repositories.Invites, cfg.InviteTTL),
	})
	if err != nil {
		return fmt.Errorf("handler init: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Tripplanner",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	services.NewInviteSweeper(repositories.Invites, services.DefaultInviteSweepInterval).Start(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Tripplanner listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, cfg.Location.String())
	return app.Listen(":" + cfg.Port)
}
