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

func (s *Server) handleListTeachers(w http.ResponseWriter, r *http.Request) {
	page := repository.ParsePageParams(r.URL.Query())

	teachers, total, err := s.repos.Teachers.ListTeachers(r.Context(), page)
	if err != nil {
		s.respondInternal(w, err, "failed to list teachers")
		return
	}

	respondPage(w, teachers, page, len(teachers), total)
}

func (s *Server) handleCreateTeacher(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateTeacherRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	principal := principalFrom(r.Context())
	if _, err := s.repos.Teachers.GetTeacherByUserID(r.Context(), principal.ID); err == nil {
		s.respondError(w, http.StatusBadRequest, "teacher profile already exists")
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		s.respondInternal(w, err, "failed to check teacher profile")
		return
	}

	teacher, err := s.repos.Teachers.CreateTeacher(r.Context(), &model.Teacher{
		TeacherID:      model.NewHumanID("TCH"),
		UserID:         principal.ID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Location:       req.Location,
		Qualifications: req.Qualifications,
		Subjects:       req.Subjects,
		Experience:     req.Experience,
		Bio:            req.Bio,
		HourlyRate:     req.HourlyRate,
	})
	if err != nil {
		s.respondInternal(w, err, "failed to create teacher")
		return
	}

	respondData(w, http.StatusCreated, teacher)
}

// handleGetTeacher resolves by id shape: a 24-hex string is tried as a
// storage id first; anything else, or a miss, falls back to the
// human-readable teacher id used in admin search links.
func (s *Server) handleGetTeacher(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := bson.ObjectIDFromHex(id); err == nil {
		teacher, err := s.repos.Teachers.GetTeacher(r.Context(), id)
		if err == nil {
			respondData(w, http.StatusOK, teacher)
			return
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			s.respondInternal(w, err, "failed to get teacher")
			return
		}
	}

	teacher, err := s.repos.Teachers.GetTeacherByTeacherID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.respondError(w, http.StatusNotFound, "teacher not found")
			return
		}
		s.respondInternal(w, err, "failed to get teacher")
		return
	}

	respondData(w, http.StatusOK, teacher)
}

func (s *Server) handleUpdateTeacher(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateTeacherRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	teacher, err := s.repos.Teachers.UpdateTeacher(r.Context(), chi.URLParam(r, "id"), repository.UpdateTeacherParams{
		Name:           req.Name,
		Phone:          req.Phone,
		Location:       req.Location,
		Qualifications: req.Qualifications,
		Subjects:       req.Subjects,
		Experience:     req.Experience,
		Bio:            req.Bio,
		HourlyRate:     req.HourlyRate,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.respondError(w, http.StatusNotFound, "teacher not found")
			return
		}
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondData(w, http.StatusOK, teacher)
}

func (s *Server) handleDeleteTeacher(w http.ResponseWriter, r *http.Request) {
	teacher, err := s.repos.Teachers.DeleteTeacher(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.respondError(w, http.StatusNotFound, "teacher not found")
			return
		}
		s.respondInternal(w, err, "failed to delete teacher")
		return
	}

	respondData(w, http.StatusOK, teacher)
}
