package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tutorlane/platform-api/internal/model"
	"github.com/tutorlane/platform-api/internal/payload"
	"github.com/tutorlane/platform-api/internal/session"
	"github.com/tutorlane/platform-api/internal/usecase"
)

func (s *Server) handleSignup(domain session.Domain) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req payload.SignupRequest
		if !s.decodeAndValidate(w, r, &req) {
			return
		}

		role := model.UserRole(req.Role)
		if !role.Valid() {
			s.respondError(w, http.StatusBadRequest, "invalid role")
			return
		}

		user, token, err := s.usecases.Auth.Signup(r.Context(), domain, usecase.SignupParams{
			Email:    req.Email,
			Password: req.Password,
			Role:     role,
		})
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrRoleNotAllowed):
				s.respondError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, usecase.ErrUserAlreadyExists):
				s.respondError(w, http.StatusBadRequest, "an account with this email already exists")
			default:
				s.respondInternal(w, err, "signup failed")
			}
			return
		}

		s.setSessionCookie(w, domain, token)
		respondData(w, http.StatusCreated, userInfo(user))
	}
}

func (s *Server) handleLogin(domain session.Domain) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req payload.LoginRequest
		if !s.decodeAndValidate(w, r, &req) {
			return
		}

		user, token, err := s.usecases.Auth.Login(r.Context(), domain, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrInvalidCredentials):
				s.respondError(w, http.StatusUnauthorized, "invalid credentials")
			case errors.Is(err, usecase.ErrRoleNotAllowed):
				s.respondError(w, http.StatusForbidden, "account belongs to a different application")
			case errors.Is(err, usecase.ErrAccountInactive):
				s.respondError(w, http.StatusForbidden, "account is inactive")
			default:
				s.respondInternal(w, err, "login failed")
			}
			return
		}

		s.setSessionCookie(w, domain, token)
		respondData(w, http.StatusOK, userInfo(user))
	}
}

func (s *Server) handleLogout(domain session.Domain) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resolver := s.resolvers[domain]
		cookie := resolver.Cookie("", 0)
		cookie.MaxAge = -1
		http.SetCookie(w, cookie)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req payload.AdminLoginRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	admin, token, err := s.usecases.Auth.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			s.respondError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, usecase.ErrAccountInactive):
			s.respondError(w, http.StatusForbidden, "account is inactive")
		default:
			s.respondInternal(w, err, "admin login failed")
		}
		return
	}

	s.setSessionCookie(w, session.DomainAdmin, token)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "admin": adminInfo(admin)})
}

// handleAdminVerify re-validates the admin session and returns the principal
// record; a verified token for a deactivated admin is still rejected.
func (s *Server) handleAdminVerify(w http.ResponseWriter, r *http.Request) {
	principal, err := s.resolvers[session.DomainAdmin].Resolve(r)
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	admin, err := s.usecases.Auth.AdminVerify(r.Context(), principal)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPrincipalNotFound):
			s.respondError(w, http.StatusNotFound, "admin not found")
		case errors.Is(err, usecase.ErrAccountInactive):
			s.respondError(w, http.StatusForbidden, "account is inactive")
		default:
			s.respondInternal(w, err, "admin verify failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "admin": adminInfo(admin)})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, domain session.Domain, token string) {
	resolver := s.resolvers[domain]
	http.SetCookie(w, resolver.Cookie(token, s.cfg.SessionTTL))
}

// requireUser authenticates any active user of the domain.
func (s *Server) requireUser(domain session.Domain) func(http.Handler) http.Handler {
	return s.requireRole(domain)
}

// requireRole authenticates a user of the domain and, when roles are given,
// authorizes only those roles. The principal record is re-fetched so a
// deactivated account is rejected even with a verified token.
func (s *Server) requireRole(domain session.Domain, roles ...model.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := s.resolvers[domain].Resolve(r)
			if err != nil {
				s.respondError(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			user, err := s.usecases.Auth.VerifyUser(r.Context(), principal)
			if err != nil {
				switch {
				case errors.Is(err, usecase.ErrPrincipalNotFound):
					s.respondError(w, http.StatusUnauthorized, "unauthenticated")
				case errors.Is(err, usecase.ErrAccountInactive):
					s.respondError(w, http.StatusForbidden, "account is inactive")
				default:
					s.respondInternal(w, err, "session verification failed")
				}
				return
			}

			if len(roles) > 0 && !roleIn(user.Role, roles) {
				s.respondError(w, http.StatusForbidden, "insufficient role")
				return
			}

			ctx := context.WithValue(r.Context(), principalContextKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireAdmin authenticates the admin domain and, when permissions are
// given, requires the admin to hold each of them.
func (s *Server) requireAdmin(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := s.resolvers[session.DomainAdmin].Resolve(r)
			if err != nil {
				s.respondError(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			admin, err := s.usecases.Auth.AdminVerify(r.Context(), principal)
			if err != nil {
				switch {
				case errors.Is(err, usecase.ErrPrincipalNotFound):
					s.respondError(w, http.StatusUnauthorized, "unauthenticated")
				case errors.Is(err, usecase.ErrAccountInactive):
					s.respondError(w, http.StatusForbidden, "account is inactive")
				default:
					s.respondInternal(w, err, "session verification failed")
				}
				return
			}

			for _, permission := range permissions {
				if !admin.HasPermission(permission) {
					s.respondError(w, http.StatusForbidden, "missing permission: "+permission)
					return
				}
			}

			ctx := context.WithValue(r.Context(), principalContextKey{}, principal)
			ctx = context.WithValue(ctx, adminContextKey{}, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func roleIn(role model.UserRole, roles []model.UserRole) bool {
	for _, candidate := range roles {
		if role == candidate {
			return true
		}
	}
	return false
}

func userInfo(user *model.User) payload.UserInfo {
	return payload.UserInfo{
		ID:    user.ID.Hex(),
		Email: user.Email,
		Role:  string(user.Role),
	}
}

func adminInfo(admin *model.Admin) payload.AdminInfo {
	return payload.AdminInfo{
		ID:          admin.ID.Hex(),
		Email:       admin.Email,
		Name:        admin.Name,
		Role:        admin.Role,
		Permissions: admin.Permissions,
		LastLogin:   admin.LastLogin.UTC().Format(time.RFC3339),
	}
}
