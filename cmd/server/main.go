package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/cinema-pos/internal/config"   // Internal config loader
	"github.com/iliyamo/cinema-pos/internal/database" // MySQL pool
	"github.com/iliyamo/cinema-pos/internal/handler"
	"github.com/iliyamo/cinema-pos/internal/layout"
	"github.com/iliyamo/cinema-pos/internal/queue"
	"github.com/iliyamo/cinema-pos/internal/repository"
	"github.com/iliyamo/cinema-pos/internal/router" // Internal router setup
	"github.com/iliyamo/cinema-pos/internal/sale"
	"github.com/iliyamo/cinema-pos/internal/schedule"
	"github.com/iliyamo/cinema-pos/internal/seatmap"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: cache and rate limiting degrade to pass-through
	// when the client is nil.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}

	// Repositories.
	hallRepo := repository.NewHallRepo(db)
	movieRepo := repository.NewMovieRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	ticketRepo := repository.NewTicketRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	saleStore := repository.NewSaleStore(db)

	// Core services.
	layouts := layout.NewCatalog(layout.DirSource{Dir: cfg.LayoutDir})
	materializer := seatmap.NewMaterializer(seatRepo)
	checker := schedule.NewChecker(sessionRepo, schedule.SuggestOptions{
		OpenHour:    cfg.OpenHour,
		CloseHour:   cfg.CloseHour,
		StepMinutes: cfg.SuggestStepMin,
	})
	coordinator := sale.NewCoordinator(saleStore)

	// Handlers.
	authHandler := handler.NewAuthHandler(cfg, employeeRepo, tokenRepo)
	handlers := router.POSHandlers{
		Halls:     handler.NewHallHandler(hallRepo),
		Movies:    handler.NewMovieHandler(movieRepo),
		Sessions:  handler.NewSessionHandler(sessionRepo, movieRepo, hallRepo, checker),
		Schedule:  handler.NewScheduleHandler(sessionRepo),
		SeatMaps:  handler.NewSeatMapHandler(sessionRepo, seatRepo, ticketRepo, layouts, materializer),
		Sales:     handler.NewSaleHandler(coordinator, sessionRepo, movieRepo, seatRepo),
		Customers: handler.NewCustomerHandler(customerRepo),
		Reports:   handler.NewReportHandler(ticketRepo),
	}

	// The sales journal consumer runs for the lifetime of the process
	// and reconnects on broker failures.
	go func() {
		if err := queue.StartSalesConsumer(); err != nil {
			log.Printf("sales consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterAPI(e, handlers, cfg.JWTSecret, rdb, config.LoadCacheConfig(), config.LoadRateLimitConfig())

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
