package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tutorlane/platform-api/internal/invoice"
	"github.com/tutorlane/platform-api/internal/model"
	"github.com/tutorlane/platform-api/internal/payload"
	"github.com/tutorlane/platform-api/internal/usecase"
)

func (s *Server) handleListOwnApplications(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	teacher, err := s.repos.Teachers.GetTeacherByUserID(r.Context(), principal.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.respondError(w, http.StatusBadRequest, "create a teacher profile first")
			return
		}
		s.respondInternal(w, err, "failed to load teacher profile")
		return
	}

	applications, err := s.repos.Applications.ListApplicationsByTeacher(r.Context(), teacher.ID)
	if err != nil {
		s.respondInternal(w, err, "failed to list applications")
		return
	}

	respondData(w, http.StatusOK, applications)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req payload.WithdrawRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	principal := principalFrom(r.Context())
	application, err := s.usecases.Withdrawal.Request(r.Context(), chi.URLParam(r, "id"), principal.ID, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrApplicationNotFound):
			s.respondError(w, http.StatusNotFound, "application not found")
		case errors.Is(err, usecase.ErrNotApplicant):
			s.respondError(w, http.StatusForbidden, "only the applicant may request withdrawal")
		case errors.Is(err, usecase.ErrApplicationNotPending):
			s.respondError(w, http.StatusBadRequest, err.Error())
		default:
			s.respondInternal(w, err, "failed to request withdrawal")
		}
		return
	}

	respondData(w, http.StatusOK, application)
}

func (s *Server) handleApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	err := s.usecases.Withdrawal.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrApplicationNotFound):
			s.respondError(w, http.StatusNotFound, "application not found")
		case errors.Is(err, usecase.ErrNotWithdrawalRequested):
			s.respondError(w, http.StatusBadRequest, err.Error())
		default:
			s.respondInternal(w, err, "failed to approve withdrawal")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleUpdateApplicationStatus moves an application through the admin
// lifecycle. The withdrawal statuses are reserved for the withdrawal flow
// and cannot be set here.
func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateApplicationStatusRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	status := model.ApplicationStatus(req.Status)
	if !status.AssignableByAdmin() {
		s.respondError(w, http.StatusBadRequest, "status must be pending, approved, declined or completed")
		return
	}

	objectID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusNotFound, "application not found")
		return
	}

	application, err := s.repos.Applications.SetStatus(r.Context(), objectID, status)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.respondError(w, http.StatusNotFound, "application not found")
			return
		}
		s.respondInternal(w, err, "failed to update application status")
		return
	}

	respondData(w, http.StatusOK, application)
}

// handleListPostApplications lists every application against one post.
func (s *Server) handleListPostApplications(w http.ResponseWriter, r *http.Request) {
	post, err := s.usecases.Post.FindPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			s.respondError(w, http.StatusNotFound, "post not found")
			return
		}
		s.respondInternal(w, err, "failed to get post")
		return
	}

	applications, err := s.repos.Applications.ListApplicationsByPost(r.Context(), post.ID)
	if err != nil {
		s.respondInternal(w, err, "failed to list applications")
		return
	}

	respondData(w, http.StatusOK, applications)
}

// handleInvoice renders a PDF invoice for a completed application.
func (s *Server) handleInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		s.respondError(w, http.StatusNotFound, "application not found")
		return
	}

	application, err := s.repos.Applications.GetApplication(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.respondError(w, http.StatusNotFound, "application not found")
			return
		}
		s.respondInternal(w, err, "failed to get application")
		return
	}

	if application.Status != model.ApplicationStatusCompleted {
		s.respondError(w, http.StatusBadRequest, "invoice is only available for completed applications")
		return
	}

	teacher, err := s.repos.Teachers.GetTeacher(r.Context(), application.TeacherID.Hex())
	if err != nil {
		s.respondInternal(w, err, "failed to load teacher for invoice")
		return
	}

	post, err := s.repos.Posts.GetPost(r.Context(), application.PostID.Hex())
	if err != nil {
		s.respondInternal(w, err, "failed to load post for invoice")
		return
	}

	guardian, err := s.repos.Guardians.GetGuardianByGuardianID(r.Context(), post.GuardianID)
	if err != nil {
		s.respondInternal(w, err, "failed to load guardian for invoice")
		return
	}

	number := "INV-" + strings.ToUpper(application.ID.Hex()[:8])
	pdf, err := s.invoices.Generate(r.Context(), invoice.Data{
		Number:       number,
		IssuedAt:     time.Now(),
		TeacherName:  teacher.Name,
		GuardianName: guardian.Name,
		PostSubject:  post.Subject + ", " + post.Class,
		Currency:     "USD",
		Lines: []invoice.Line{
			{Description: "Tuition: " + post.Subject, Hours: 1, Rate: post.Budget},
		},
	})
	if err != nil {
		s.respondInternal(w, err, "failed to render invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+number+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
