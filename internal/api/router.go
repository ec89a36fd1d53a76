package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/yodaslang/yodas-api/internal/api/middleware"
	"github.com/yodaslang/yodas-api/internal/service"
)

// RouterConfig holds the services and settings the router wires together.
type RouterConfig struct {
	Terms        service.TermService
	Sets         service.SetService
	Associations service.AssociationService
	Hierarchy    *service.HierarchyService
	Auth         service.AuthService
	Sessions     *middleware.SessionManager

	// AuthEnabled guards mutating routes with a login session.
	AuthEnabled    bool
	AllowedOrigins []string
	// QueryTimeout bounds the request context.
	QueryTimeout time.Duration
	Logger       *slog.Logger
}

// NewRouter builds the HTTP handler of the service.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.NewTraceMiddleware(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(cfg.Sessions.LoadAndSave)
	r.Use(middleware.RequestTimeout(cfg.QueryTimeout))

	terms := NewTermHandler(cfg.Terms, log)
	sets := NewSetHandler(cfg.Sets, cfg.Hierarchy, log)
	links := NewAssociationHandler(cfg.Associations)
	authHandler := NewAuthHandler(cfg.Auth, cfg.Sessions, log)
	requireAuth := middleware.NewAuthMiddleware(cfg.Sessions, cfg.AuthEnabled).RequireAuth

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	r.Route("/data", func(r chi.Router) {
		r.Get("/all/{lang}", terms.ListAll)
		r.Get("/fetch/{lang}", terms.ListPage)
		r.Get("/fetchSize/{lang}", terms.Count)
		r.Get("/random/{lang}", terms.Random)
	})

	r.Route("/sets", func(r chi.Router) {
		r.Get("/getSet/{lang}", sets.ListByLanguage)
		r.Get("/folders", sets.ListFolders)
		r.Get("/hierarchy", sets.Hierarchy)
		r.Get("/{id}/terms", links.GetTerms)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", sets.Create)
			r.Delete("/", sets.Delete)
			r.Put("/updateSetFolder", sets.UpdateFolder)
			r.Delete("/{id}", sets.DeleteByID)
			r.Post("/{id}/terms", links.AddTerms)
			r.Delete("/{id}/terms", links.RemoveTerms)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/me", authHandler.Me)
		r.Post("/ops/addData/{lang}", terms.AddMany)
		r.Delete("/ops/removeData/{lang}", terms.RemoveByWord)
	})

	return r
}
