package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/danmaket/marketplace-api/internal/application/admin"
	"github.com/danmaket/marketplace-api/internal/application/audit"
	"github.com/danmaket/marketplace-api/internal/application/auth"
	apporder "github.com/danmaket/marketplace-api/internal/application/order"
	"github.com/danmaket/marketplace-api/internal/application/usecase"
	"github.com/danmaket/marketplace-api/internal/infrastructure/mailer"
	infrapdf "github.com/danmaket/marketplace-api/internal/infrastructure/pdf"
	"github.com/danmaket/marketplace-api/internal/infrastructure/postgres"
	"github.com/danmaket/marketplace-api/internal/infrastructure/realtime"
	"github.com/danmaket/marketplace-api/internal/infrastructure/storage"
	httpRouter "github.com/danmaket/marketplace-api/internal/interfaces/http"
	"github.com/danmaket/marketplace-api/pkg/config"
	"github.com/danmaket/marketplace-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("chargement configuration : " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	vendorOrderRepo := postgres.NewVendorOrderRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	activityLogRepo := postgres.NewActivityLogRepository(pool)
	featuredRepo := postgres.NewFeaturedRepository(pool)
	bannerRepo := postgres.NewBannerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recorder := audit.NewRecorder(activityLogRepo, log)

	// Flux temps réel Redis. S'il est injoignable au démarrage, l'API reste
	// servie et les publications deviennent des no-op.
	var feed *realtime.Feed
	var publisher audit.Publisher = audit.NopPublisher{}
	redisFeed := realtime.NewFeed(cfg.Redis, log)
	pingCtx, cancelPing := context.WithTimeout(ctx, 3*time.Second)
	if err := redisFeed.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis injoignable, flux temps réel désactivé")
		_ = redisFeed.Close()
	} else {
		feed = redisFeed
		publisher = redisFeed
		defer redisFeed.Close()
	}
	cancelPing()

	imageStore, err := storage.NewS3Store(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("initialisation du stockage S3")
	}

	mail := mailer.NewResendMailer(cfg.Mail)
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()

	authUC := auth.NewAuthUseCase(userRepo, roleRepo, recorder, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := usecase.NewCatalogUseCase(productRepo, categoryRepo, reviewRepo, userRepo)
	cartUC := usecase.NewCartUseCase(cartRepo, productRepo)
	productUC := usecase.NewProductUseCase(productRepo, imageStore, publisher)
	reviewUC := usecase.NewReviewUseCase(reviewRepo, productRepo)
	promoUC := usecase.NewPromoUseCase(featuredRepo, bannerRepo, productRepo, imageStore, publisher)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)
	checkoutUC := apporder.NewCheckoutUseCase(txRunner, notificationRepo, recorder, publisher)
	orderUC := apporder.NewOrderUseCase(orderRepo, vendorOrderRepo, productRepo, notificationRepo, recorder, publisher)
	receiptUC := apporder.NewReceiptUseCase(orderRepo, userRepo, productRepo, receiptGenerator)
	adminUC := admin.NewAdminUseCase(
		userRepo, roleRepo, productRepo, orderRepo,
		activityLogRepo, notificationRepo, mail, recorder, publisher,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    20 * 1024 * 1024, // uploads d'images multipart
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local : http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "DanMaket API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CatalogUC:      catalogUC,
		CartUC:         cartUC,
		ProductUC:      productUC,
		ReviewUC:       reviewUC,
		PromoUC:        promoUC,
		NotificationUC: notificationUC,
		CheckoutUC:     checkoutUC,
		OrderUC:        orderUC,
		ReceiptUC:      receiptUC,
		AdminUC:        adminUC,
		Feed:           feed,
		Log:            log,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
