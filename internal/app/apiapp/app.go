package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/config"
	s3infra "github.com/BorisVilhard/IT-MAXI-BE/internal/infra/s3"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/jobs/cleanup"
	pgrepo "github.com/BorisVilhard/IT-MAXI-BE/internal/repo/postgres"
	redrepo "github.com/BorisVilhard/IT-MAXI-BE/internal/repo/redis"
	assetsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/assets"
	authsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/auth"
	interactionsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/interactions"
	listingsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/listings"
	paymentsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/payments"
	profilesvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/profiles"
	ratesvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/rate"
	userssvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/users"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	rateRepo := redrepo.NewRateRepo(redisClient)
	profileRepo := pgrepo.NewProfileRepo(pool)
	userRepo := pgrepo.NewUserRepo(pool)
	interactionRepo := pgrepo.NewInteractionRepo(pool)

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}

	assetStorage := assetsvc.NewS3Storage(s3Client, cfg.S3.Bucket)
	assetCache := assetsvc.NewCache(cfg.Assets.CacheTTL)
	assetCache.StartSweeper(ctx, cfg.Assets.SweepInterval)
	assetService := assetsvc.NewService(assetStorage, assetCache)

	processor := assetsvc.NewProcessor(cfg.Assets.MaxDimension, cfg.Assets.JPEGQuality)
	baseURL := cfg.HTTP.BaseURL
	profileService := profilesvc.NewService(profileRepo, userRepo, assetService, processor, baseURL)
	listingService := listingsvc.NewService(profileRepo, userRepo, baseURL)
	interactionService := interactionsvc.NewService(interactionRepo, profileRepo, userRepo, baseURL)
	userService := userssvc.NewService(userRepo, profileService)
	paymentService := paymentsvc.NewService(userRepo, cfg.Billing.WebhookSecret, log)
	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret)
	rateLimiter := ratesvc.NewLimiter(rateRepo)

	expiryJob := cleanup.NewSubscriptionExpiryJob(userRepo, log)
	expiryJob.Start(ctx, cfg.Billing.ExpiryInterval)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		ProfileService:     profileService,
		AssetService:       assetService,
		InteractionService: interactionService,
		ListingService:     listingService,
		UserService:        userService,
		PaymentService:     paymentService,
		JWTManager:         jwtManager,
		RateLimiter:        rateLimiter,
		Logger:             log,
		Config:             cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
