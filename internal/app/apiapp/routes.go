package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/config"
	assetsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/assets"
	authsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/auth"
	interactionsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/interactions"
	listingsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/listings"
	paymentsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/payments"
	profilesvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/profiles"
	ratesvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/rate"
	userssvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/users"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/transport/http/handlers"
)

type Dependencies struct {
	ProfileService     *profilesvc.Service
	AssetService       *assetsvc.Service
	InteractionService *interactionsvc.Service
	ListingService     *listingsvc.Service
	UserService        *userssvc.Service
	PaymentService     *paymentsvc.Service
	JWTManager         *authsvc.JWTManager
	RateLimiter        *ratesvc.Limiter
	Logger             *zap.Logger
	Config             config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	profileHandler := handlers.NewProfileHandler(deps.ProfileService, deps.RateLimiter, deps.Config.Limits.ProfileWritesPerMinute)
	assetHandler := handlers.NewAssetHandler(deps.AssetService)
	interactionHandler := handlers.NewInteractionHandler(deps.InteractionService, deps.RateLimiter, deps.Config.Limits.InteractionWritesPerMinute)
	jobHandler := handlers.NewJobHandler(deps.ProfileService)
	listingHandler := handlers.NewListingHandler(deps.ListingService)
	userHandler := handlers.NewUserHandler(deps.UserService)
	paymentHandler := handlers.NewPaymentHandler(deps.PaymentService)
	authMW := AuthMiddleware(deps.JWTManager, deps.Logger)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/profile", func(r chi.Router) {
		r.With(authMW).Post("/", profileHandler.Update)

		r.Route("/interactions", func(r chi.Router) {
			r.Use(authMW)
			r.Post("/", interactionHandler.Create)
			r.Get("/", interactionHandler.List)
			r.Put("/{id}", interactionHandler.Update)
			r.Delete("/{id}", interactionHandler.Delete)
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Use(authMW)
			r.Post("/", jobHandler.Create)
			r.Put("/{jobId}", jobHandler.Update)
			r.Delete("/{jobId}", jobHandler.Delete)
		})

		r.Route("/{userId}", func(r chi.Router) {
			r.With(authMW).Get("/", profileHandler.Get)
			r.Get("/avatar", assetHandler.Avatar)
			r.Get("/background", assetHandler.Background)
			r.Get("/cv", assetHandler.CV)
			r.Get("/carousel/{itemId}/image", assetHandler.CarouselImage)
			r.Get("/courses/{courseId}/thumbnail", assetHandler.CourseThumbnail)
		})
	})

	r.Route("/list", func(r chi.Router) {
		r.Get("/job-descriptions", listingHandler.Jobs)
		r.Get("/job-descriptions/{roleType}", listingHandler.JobsByRoleType)
		r.Get("/courses", listingHandler.Courses)
		r.Get("/courses/{courseId}", listingHandler.Course)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/{id}", userHandler.Get)
		r.Put("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Delete)
	})

	r.Post("/payments/webhook", paymentHandler.Webhook)
}
