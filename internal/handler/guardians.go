package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tutorlane/platform-api/internal/model"
	"github.com/tutorlane/platform-api/internal/payload"
	"github.com/tutorlane/platform-api/internal/repository"
)

func (s *Server) handleListGuardians(w http.ResponseWriter, r *http.Request) {
	page := repository.ParsePageParams(r.URL.Query())

	guardians, total, err := s.repos.Guardians.ListGuardians(r.Context(), page)
	if err != nil {
		s.respondInternal(w, err, "failed to list guardians")
		return
	}

	respondPage(w, guardians, page, len(guardians), total)
}

func (s *Server) handleCreateGuardian(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateGuardianRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	principal := principalFrom(r.Context())
	if _, err := s.repos.Guardians.GetGuardianByUserID(r.Context(), principal.ID); err == nil {
		s.respondError(w, http.StatusBadRequest, "guardian profile already exists")
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		s.respondInternal(w, err, "failed to check guardian profile")
		return
	}

	guardian, err := s.repos.Guardians.CreateGuardian(r.Context(), &model.Guardian{
		GuardianID: model.NewHumanID("GRD"),
		UserID:     principal.ID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Location:   req.Location,
	})
	if err != nil {
		s.respondInternal(w, err, "failed to create guardian")
		return
	}

	respondData(w, http.StatusCreated, guardian)
}

// handleGetGuardian resolves by id shape the same way handleGetTeacher does.
func (s *Server) handleGetGuardian(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := bson.ObjectIDFromHex(id); err == nil {
		guardian, err := s.repos.Guardians.GetGuardian(r.Context(), id)
		if err == nil {
			respondData(w, http.StatusOK, guardian)
			return
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			s.respondInternal(w, err, "failed to get guardian")
			return
		}
	}

	guardian, err := s.repos.Guardians.GetGuardianByGuardianID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.respondError(w, http.StatusNotFound, "guardian not found")
			return
		}
		s.respondInternal(w, err, "failed to get guardian")
		return
	}

	respondData(w, http.StatusOK, guardian)
}

func (s *Server) handleUpdateGuardian(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateGuardianRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	guardian, err := s.repos.Guardians.UpdateGuardian(r.Context(), chi.URLParam(r, "id"), repository.UpdateGuardianParams{
		Name:     req.Name,
		Phone:    req.Phone,
		Location: req.Location,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.respondError(w, http.StatusNotFound, "guardian not found")
			return
		}
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondData(w, http.StatusOK, guardian)
}

func (s *Server) handleDeleteGuardian(w http.ResponseWriter, r *http.Request) {
	guardian, err := s.repos.Guardians.DeleteGuardian(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.respondError(w, http.StatusNotFound, "guardian not found")
			return
		}
		s.respondInternal(w, err, "failed to delete guardian")
		return
	}

	respondData(w, http.StatusOK, guardian)
}
