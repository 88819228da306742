package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tutorlane/platform-api/internal/model"
	"github.com/tutorlane/platform-api/internal/payload"
	"github.com/tutorlane/platform-api/internal/repository"
	"github.com/tutorlane/platform-api/internal/security"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page := repository.ParsePageParams(r.URL.Query())

	users, total, err := s.repos.Users.ListUsers(r.Context(), page)
	if err != nil {
		s.respondInternal(w, err, "failed to list users")
		return
	}

	// Never expose password hashes through the admin listing.
	infos := make([]payload.UserInfo, 0, len(users))
	for _, user := range users {
		infos = append(infos, userInfo(user))
	}

	respondPage(w, infos, page, len(infos), total)
}

type updateUserRequest struct {
	Role   *string `json:"role,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	params := repository.UpdateUserParams{Active: req.Active}
	if req.Role != nil {
		role := model.UserRole(*req.Role)
		if !role.Valid() {
			s.respondError(w, http.StatusBadRequest, "invalid role")
			return
		}
		params.Role = &role
	}

	user, err := s.repos.Users.UpdateUser(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.respondError(w, http.StatusNotFound, "user not found")
			return
		}
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondData(w, http.StatusOK, userInfo(user))
}

func (s *Server) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	page := repository.ParsePageParams(r.URL.Query())

	admins, total, err := s.repos.Admins.ListAdmins(r.Context(), page)
	if err != nil {
		s.respondInternal(w, err, "failed to list admins")
		return
	}

	infos := make([]payload.AdminInfo, 0, len(admins))
	for _, admin := range admins {
		infos = append(infos, adminInfo(admin))
	}

	respondPage(w, infos, page, len(infos), total)
}

func (s *Server) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateAdminRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		s.respondInternal(w, err, "failed to hash admin password")
		return
	}

	admin, err := s.repos.Admins.CreateAdmin(r.Context(), &model.Admin{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         req.Role,
		Permissions:  req.Permissions,
		Active:       true,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			s.respondError(w, http.StatusBadRequest, "an admin with this email already exists")
			return
		}
		s.respondInternal(w, err, "failed to create admin")
		return
	}

	respondData(w, http.StatusCreated, adminInfo(admin))
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	page := repository.ParsePageParams(r.URL.Query())

	notifications, total, err := s.repos.Notifications.ListNotifications(r.Context(), page)
	if err != nil {
		s.respondInternal(w, err, "failed to list notifications")
		return
	}

	respondPage(w, notifications, page, len(notifications), total)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.repos.Settings.GetSettings(r.Context())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondData(w, http.StatusOK, nil)
			return
		}
		s.respondInternal(w, err, "failed to get settings")
		return
	}

	respondData(w, http.StatusOK, settings.Value)
}

// handlePutSettings replaces the settings blob wholesale; there is no
// partial merge.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var value any
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	settings, err := s.repos.Settings.PutSettings(r.Context(), value)
	if err != nil {
		s.respondInternal(w, err, "failed to save settings")
		return
	}

	respondData(w, http.StatusOK, settings.Value)
}

// handleEmailBounce records a delivery failure reported by the mail
// provider against the matching user.
func (s *Server) handleEmailBounce(w http.ResponseWriter, r *http.Request) {
	var req payload.BounceWebhookRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	if err := s.repos.Users.RecordBounce(r.Context(), req.Email, req.Reason, time.Now()); err != nil {
		s.respondInternal(w, err, "failed to record bounce")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
