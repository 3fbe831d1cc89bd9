package httpapi

import (
	"net/http"
	"time"

	"rvce-fee-backend-go/internal/config"
	"rvce-fee-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	DB         *sqlx.DB
	Config     config.Config
	Tokens     services.TokenService
	Sessions   *services.SessionStore
	MetricsHub *services.MetricsHub
}

func NewServer(db *sqlx.DB, cfg config.Config, sessions *services.SessionStore, hub *services.MetricsHub) *Server {
	tokens := services.TokenService{
		Secret: []byte(cfg.SessionSecret),
		Issuer: "rvce-fee",
		TTL:    time.Duration(cfg.SessionTTLSeconds) * time.Second,
	}
	return &Server{
		DB:         db,
		Config:     cfg,
		Tokens:     tokens,
		Sessions:   sessions,
		MetricsHub: hub,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	r.Use(NoCache)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(WithSession(s.Tokens, s.Sessions))

	r.Get("/", s.Index)
	r.Get("/register", s.RegisterPage)
	r.Post("/register", s.Register)
	r.Get("/login/{role}", s.LoginPage)
	r.Post("/login/{role}", s.Login)
	r.Get("/dashboard", s.Dashboard)
	r.With(RequireAdminOwner).Get("/total-bill", s.TotalBill)
	r.With(RequireAdminOwner).Get("/total-bill.html", s.TotalBill)
	r.Get("/logout", s.Logout)

	r.Route("/api", func(api chi.Router) {
		api.Get("/pending-fees", s.ListPendingFees)
		api.Post("/pending-fees/import", s.ImportPendingFees)
		api.Delete("/pending-fees/{feeID:[0-9]+}", s.DeletePendingFee)
		api.Post("/pending-fees/delete-by-student", s.DeletePendingFeesByStudent)
		api.Get("/profile", s.GetProfile)
		api.Post("/profile/upload", s.UploadProfile)
		api.With(RequireAdminOwner).Get("/metrics/history", s.MetricsHistory)
	})

	r.Get("/ws/metrics", s.MetricsSocket)
	return r
}
