package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rosebudapp/rosebud/internal/logging"
	"github.com/rosebudapp/rosebud/internal/server/metrics"
	"github.com/rosebudapp/rosebud/internal/server/middleware"
)

// RouterConfig carries the settings the router needs from the server config.
type RouterConfig struct {
	SecretKey string
	AuthRPS   float64
	AuthBurst int
}

// Deps bundles the handlers and observability plumbing the router mounts.
type Deps struct {
	Users       UserService
	Entries     EntryService
	Groups      GroupService
	Tags        TagService
	Attachments AttachmentService
	Metrics     metrics.Recorder
	Gatherer    prometheus.Gatherer
	Logger      logging.Logger
}

// NewRouter assembles the full route table. Auth endpoints are rate limited
// per IP; everything else under /api/v1 requires a valid bearer token.
func NewRouter(cfg RouterConfig, deps Deps) *chi.Mux {
	authHandler := NewAuthHandler(deps.Users, deps.Metrics)
	entryHandler := NewEntryHandler(deps.Entries)
	groupHandler := NewGroupHandler(deps.Groups)
	tagHandler := NewTagHandler(deps.Tags)
	attachmentHandler := NewAttachmentHandler(deps.Attachments, deps.Metrics)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	if deps.Logger != nil {
		r.Use(middleware.RequestLogger(deps.Logger))
	}
	r.Use(middleware.Metrics(deps.Metrics))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.AuthRPS, cfg.AuthBurst))
		r.Post("/api/v1/auth/register", authHandler.HandleRegister)
		r.Post("/api/v1/auth/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.SecretKey))

		r.Get("/api/v1/auth/me", authHandler.HandleMe)
		r.Get("/api/v1/users/{id}", authHandler.HandleGetUser)

		r.Get("/api/v1/entries", entryHandler.HandleList)
		r.Post("/api/v1/entries", entryHandler.HandleCreate)
		r.Put("/api/v1/entries/{id}", entryHandler.HandleUpdate)
		r.Delete("/api/v1/entries/{id}", entryHandler.HandleDelete)

		r.Post("/api/v1/groups", groupHandler.HandleCreate)
		r.Post("/api/v1/groups/join", groupHandler.HandleJoin)
		r.Get("/api/v1/groups/{id}", groupHandler.HandleGet)
		r.Get("/api/v1/members", groupHandler.HandleListMembers)

		r.Get("/api/v1/tags", tagHandler.HandleList)
		r.Post("/api/v1/tags", tagHandler.HandleCreate)
		r.Delete("/api/v1/tags/{id}", tagHandler.HandleDelete)

		r.Post("/api/v1/attachments/presign", attachmentHandler.HandlePresignPut)
		r.Get("/api/v1/attachments/presign", attachmentHandler.HandlePresignGet)
	})

	return r
}
