package api

import (
	"net/http"
	"time"

	"coursework_tracker/internal/api/handler"
	"coursework_tracker/internal/app/service"
	"coursework_tracker/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

type Services struct {
	Auth        *service.AuthService
	Assignments *service.AssignmentService
	Submissions *service.SubmissionService
	Webhook     *service.WebhookService
	Query       *service.QueryService
	Languages   *service.LanguageService
}

type RouterOptions struct {
	MaxUploadBytes int64
	RunnerSecret   string
}

func NewRouter(s Services, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifier only parses the bearer token; routes that need it add Authenticator.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		metaHandler := handler.NewMetaHandler(s.Languages)
		metaHandler.RegisterRoutes(api)

		authHandler := handler.NewAuthHandler(s.Auth)
		api.Route("/auth", authHandler.RegisterRoutes)

		assignmentHandler := handler.NewAssignmentHandler(s.Assignments, s.Query, opts.MaxUploadBytes)
		api.Route("/assignments", assignmentHandler.RegisterRoutes)

		submissionHandler := handler.NewSubmissionHandler(s.Submissions, s.Query, opts.MaxUploadBytes)
		api.Route("/submissions", submissionHandler.RegisterRoutes)

		webhookHandler := handler.NewWebhookHandler(s.Webhook, opts.RunnerSecret)
		api.Route("/runner", webhookHandler.RegisterRoutes)
	})

	return r
}
