package http

import (
	"net/http"

	"github.com/go-catalog-nosql/internal/application/auth"
	"github.com/go-catalog-nosql/internal/application/content"
	"github.com/go-catalog-nosql/internal/application/notification"
	"github.com/go-catalog-nosql/internal/application/user"
	"github.com/go-catalog-nosql/internal/config"
	"github.com/go-catalog-nosql/internal/pkg/password"
	"github.com/go-catalog-nosql/internal/transport/http/handler"
	appmiddleware "github.com/go-catalog-nosql/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10. Guards code issuing, code checking and login.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10, cfg.TrustProxyHeaders)

	authSvc := auth.NewService(auth.ServiceDeps{
		Challenges: deps.Challenges,
		UserRepo:   deps.UserRepo,
		Hasher:     password.NewHasher(cfg.BcryptCost),
		SMSSender:  deps.SMSSender,
		Mailer:     deps.Mailer,
		TestMode:   cfg.OTP.TestMode,
		TestCode:   cfg.OTP.TestCode,
	})
	profileSvc := user.NewService(user.ServiceDeps{UserRepo: deps.UserRepo})
	notifSvc := notification.NewService(deps.NotificationRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	profileH := handler.NewProfileHandler(profileSvc)
	notifH := handler.NewNotificationHandler(notifSvc)
	categoryH := handler.NewCategoryHandler(content.NewCategoryService(deps.Categories, deps.Images))
	logoH := handler.NewLogoHandler(content.NewLogoService(deps.Logos, deps.Images))
	bannerH := handler.NewBannerHandler(content.NewBannerService(deps.Banners, deps.Images))
	containerH := handler.NewContainerHandler(content.NewContainerService(deps.Containers, deps.Images))
	dueDateH := handler.NewDueDateHandler(content.NewDueDateService(deps.DueDates, deps.Images))
	jobH := handler.NewJobHandler(content.NewJobService(deps.Jobs, deps.Images))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)

		// ── Accounts ─────────────────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(sensitiveRL.Limit)

			r.Post("/register", authH.Register)
			r.Post("/verify-otp", authH.VerifyOtp)
			r.Post("/login", authH.Login)
			r.Post("/forgot-password/send-otp", authH.SendResetOtp)
			r.Post("/forgot-password/verify-otp", authH.VerifyResetOtp)
			r.Post("/forgot-password/reset", authH.ResetPassword)
		})

		r.Get("/profile/{userId}", profileH.Get)
		r.Put("/profile/{userId}", profileH.Update)
		r.Delete("/profile/{userId}", profileH.Delete)

		r.Post("/address/{userId}", profileH.AddAddress)
		r.Put("/address/{userId}", profileH.UpdateAddress)
		r.Get("/address/{userId}", profileH.GetAddress)
		r.Delete("/address/{userId}", profileH.DeleteAddress)

		r.Post("/location/{userId}", profileH.AddLocation)
		r.Put("/location/{userId}", profileH.UpdateLocation)
		r.Get("/location/{userId}", profileH.GetLocation)

		// ── Notifications ────────────────────────────────────────────────────
		r.Post("/notification", notifH.Create)
		r.Get("/notifications", notifH.List)
		r.Put("/notification/read/{id}", notifH.MarkAsRead)
		r.Delete("/notification/{id}", notifH.Delete)

		// ── Content ──────────────────────────────────────────────────────────
		mountResource(r, "/category", categoryH)
		mountResource(r, "/logo", logoH)
		mountResource(r, "/banner", bannerH)
		mountResource(r, "/container", containerH)
		mountResource(r, "/due-dates", dueDateH)
		mountResource(r, "/jobs", jobH)
	})

	return r
}

type resourceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

func mountResource(r chi.Router, path string, h resourceHandler) {
	r.Post(path, h.Create)
	r.Get(path, h.List)
	r.Get(path+"/{id}", h.Get)
	r.Put(path+"/{id}", h.Update)
	r.Delete(path+"/{id}", h.Delete)
}
