// Package handler wires the platform's HTTP surface: route handlers
// validate request shape, consult the session layer, invoke a repository or
// usecase, and always answer with a JSON body carrying success or error.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/tutorlane/platform-api/internal/config"
	"github.com/tutorlane/platform-api/internal/invoice"
	"github.com/tutorlane/platform-api/internal/model"
	"github.com/tutorlane/platform-api/internal/repository"
	"github.com/tutorlane/platform-api/internal/session"
	"github.com/tutorlane/platform-api/internal/usecase"
)

// Repositories bundles the data access layer handed to the server.
type Repositories struct {
	Users         repository.UserRepository
	Teachers      repository.TeacherRepository
	Guardians     repository.GuardianRepository
	Posts         repository.PostRepository
	Applications  repository.ApplicationRepository
	Ads           repository.AdRepository
	AdAnalytics   repository.AdAnalyticsRepository
	Admins        repository.AdminRepository
	Notifications repository.NotificationRepository
	Settings      repository.SettingsRepository
}

// Usecases bundles the operations that go beyond plain CRUD.
type Usecases struct {
	Auth       usecase.AuthUsecase
	Post       usecase.PostUsecase
	Ad         usecase.AdUsecase
	Withdrawal usecase.WithdrawalUsecase
}

// Server holds the dependencies shared by all route handlers.
type Server struct {
	cfg       *config.Config
	logger    *zerolog.Logger
	repos     Repositories
	usecases  Usecases
	resolvers map[session.Domain]*session.Resolver
	invoices  invoice.Generator
}

func NewServer(
	cfg *config.Config,
	logger *zerolog.Logger,
	repos Repositories,
	usecases Usecases,
	resolvers map[session.Domain]*session.Resolver,
	invoices invoice.Generator,
) *Server {
	return &Server{
		cfg:       cfg,
		logger:    logger,
		repos:     repos,
		usecases:  usecases,
		resolvers: resolvers,
		invoices:  invoices,
	}
}

// Router assembles the full route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.recoverer)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		s.respondError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "status": "ok"})
	})

	// Retired main-app routes; callers are pointed at the sub-applications.
	r.Post("/api/auth/login", s.handleGone(s.cfg.TutorialsBaseURL))
	r.Post("/api/auth/admin/login", s.handleGone(s.cfg.AdminBaseURL))
	r.Post("/api/register/teacher", s.handleGone(s.cfg.TutorialsBaseURL))
	r.Post("/api/register/freelancer", s.handleGone(s.cfg.JobsBaseURL))

	r.Route("/api/tutorials/auth", func(r chi.Router) {
		r.Post("/signup", s.handleSignup(session.DomainTutorials))
		r.Post("/login", s.handleLogin(session.DomainTutorials))
		r.Post("/logout", s.handleLogout(session.DomainTutorials))
	})
	r.Route("/api/jobs/auth", func(r chi.Router) {
		r.Post("/signup", s.handleSignup(session.DomainJobs))
		r.Post("/login", s.handleLogin(session.DomainJobs))
		r.Post("/logout", s.handleLogout(session.DomainJobs))
	})

	r.Post("/api/admin/auth/login", s.handleAdminLogin)
	r.Get("/api/auth/admin/verify", s.handleAdminVerify)

	// Tutorials app surface.
	r.Route("/api/teachers", func(r chi.Router) {
		r.With(s.requireAdmin()).Get("/", s.handleListTeachers)
		r.With(s.requireRole(session.DomainTutorials, model.RoleTeacher)).Post("/", s.handleCreateTeacher)
		r.With(s.requireAdmin()).Get("/{id}", s.handleGetTeacher)
		r.With(s.requireAdmin()).Patch("/{id}", s.handleUpdateTeacher)
		r.With(s.requireAdmin()).Delete("/{id}", s.handleDeleteTeacher)
	})
	r.Route("/api/guardians", func(r chi.Router) {
		r.With(s.requireAdmin()).Get("/", s.handleListGuardians)
		r.With(s.requireRole(session.DomainTutorials, model.RoleGuardian)).Post("/", s.handleCreateGuardian)
		r.With(s.requireAdmin()).Get("/{id}", s.handleGetGuardian)
		r.With(s.requireAdmin()).Patch("/{id}", s.handleUpdateGuardian)
		r.With(s.requireAdmin()).Delete("/{id}", s.handleDeleteGuardian)
	})
	r.Route("/api/posts", func(r chi.Router) {
		r.With(s.requireUser(session.DomainTutorials)).Get("/", s.handleListPosts)
		r.With(s.requireRole(session.DomainTutorials, model.RoleGuardian)).Post("/", s.handleCreatePost)
		r.With(s.requireUser(session.DomainTutorials)).Get("/{id}", s.handleGetPost)
		r.With(s.requireAdmin()).Patch("/{id}", s.handleUpdatePost)
		r.With(s.requireAdmin()).Delete("/{id}", s.handleDeletePost)
		r.With(s.requireAdmin()).Patch("/{id}/status", s.handleUpdatePostStatus)
		r.With(s.requireAdmin()).Get("/{id}/applications", s.handleListPostApplications)
		r.With(s.requireRole(session.DomainTutorials, model.RoleTeacher)).Post("/{id}/apply", s.handleApply)
	})
	r.Route("/api/applications", func(r chi.Router) {
		r.With(s.requireRole(session.DomainTutorials, model.RoleTeacher)).Get("/", s.handleListOwnApplications)
		r.With(s.requireRole(session.DomainTutorials, model.RoleTeacher)).Post("/{id}/withdraw", s.handleWithdraw)
		r.With(s.requireAdmin()).Patch("/{id}/status", s.handleUpdateApplicationStatus)
		r.With(s.requireAdmin()).Post("/{id}/withdraw/approve", s.handleApproveWithdrawal)
		r.With(s.requireAdmin("invoices")).Get("/{id}/invoice", s.handleInvoice)
	})

	// Ads: management is admin-gated, serving and tracking are public.
	r.Route("/api/ads", func(r chi.Router) {
		r.Get("/active", s.handleActiveAds)
		r.Post("/{id}/track", s.handleTrackAd)
		r.With(s.requireAdmin("ads")).Get("/", s.handleListAds)
		r.With(s.requireAdmin("ads")).Post("/", s.handleCreateAd)
		r.With(s.requireAdmin("ads")).Get("/{id}", s.handleGetAd)
		r.With(s.requireAdmin("ads")).Patch("/{id}", s.handleUpdateAd)
		r.With(s.requireAdmin("ads")).Delete("/{id}", s.handleDeleteAd)
		r.With(s.requireAdmin("ads")).Get("/{id}/analytics", s.handleAdAnalytics)
	})

	// Admin dashboard surface.
	r.Route("/api/admins", func(r chi.Router) {
		r.With(s.requireAdmin("admins")).Get("/", s.handleListAdmins)
		r.With(s.requireAdmin("admins")).Post("/", s.handleCreateAdmin)
	})
	r.With(s.requireAdmin()).Get("/api/users", s.handleListUsers)
	r.With(s.requireAdmin()).Patch("/api/users/{id}", s.handleUpdateUser)
	r.With(s.requireAdmin()).Get("/api/admin/notifications", s.handleListNotifications)
	r.With(s.requireAdmin("settings")).Get("/api/settings", s.handleGetSettings)
	r.With(s.requireAdmin("settings")).Put("/api/settings", s.handlePutSettings)

	r.Post("/api/webhooks/email-bounce", s.handleEmailBounce)

	return r
}

// handleGone answers retired routes with 410 and the base URL of the
// application that replaced them.
func (s *Server) handleGone(baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusGone, map[string]any{
			"success": false,
			"error":   "this endpoint has been retired",
			"movedTo": baseURL,
		})
	}
}

func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panicked")
				s.respondError(w, http.StatusInternalServerError, "something went wrong")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type principalContextKey struct{}
type adminContextKey struct{}

func principalFrom(ctx context.Context) *session.Principal {
	principal, _ := ctx.Value(principalContextKey{}).(*session.Principal)
	return principal
}

func adminFrom(ctx context.Context) *model.Admin {
	admin, _ := ctx.Value(adminContextKey{}).(*model.Admin)
	return admin
}
