package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/configs"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/jobs"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/events"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/logger"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/payments"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/rag"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/storage"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/routes"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()
	lg := logger.New("food-delivery", cfg.LogLevel)

	// DB
	if err := configs.ConnectionDB(cfg); err != nil {
		log.Fatal(err)
	}
	if err := configs.SetupDatabase(); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
	if err := configs.SeedSuperAdmin(configs.DB(), cfg.SuperAdminEmail, cfg.SuperAdminPassword); err != nil {
		log.Fatalf("seed super admin failed: %v", err)
	}

	utils.RegisterValidators()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := routes.Deps{DB: configs.DB(), Config: cfg, Log: lg}

	if cfg.CloudinaryEnabled() {
		cld, err := storage.NewCloudinary(cfg.CloudinaryURL, cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Fatal(err)
		}
		deps.Storage = cld
	} else {
		deps.Storage = storage.NewLocal(cfg.UploadDir)
	}

	if cfg.StripeSecretKey != "" {
		deps.Checkout = payments.NewStripe(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	} else {
		lg.Warn("startup", "", "STRIPE_SECRET_KEY not set, card payments disabled")
	}

	if cfg.GroqAPIKey != "" {
		deps.LLM = rag.NewChatCompleter(cfg.GroqAPIKey, cfg.LLMBaseURL, cfg.LLMModel)
	} else {
		lg.Warn("startup", "", "GROQ_API_KEY not set, menu assistant disabled")
	}

	if cfg.MongoURI != "" {
		mctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		hist, err := rag.ConnectMongoHistory(mctx, cfg.MongoURI, cfg.MongoDB)
		cancel()
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = hist.Close(cctx)
		}()
		deps.History = hist
	}

	if cfg.RabbitMQURL != "" {
		broker, err := events.DialAMQP(cfg.RabbitMQURL, cfg.RabbitMQExchange, lg)
		if err != nil {
			log.Fatal(err)
		}
		defer broker.Close()
		deps.Broker = broker
	}

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery())
	app := routes.RegisterRoutes(r, deps)

	go app.Hub.Run(ctx)

	sched, err := jobs.StartCartCleanup(cfg.CartPurgeSchedule, cfg.CartTTL, app.Carts, lg)
	if err != nil {
		log.Fatal(err)
	}
	defer sched.Stop()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		lg.Info("startup", "", "server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	lg.Info("shutdown", "", "shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		lg.Error("shutdown", "", "server shutdown failed", err)
	}
}
