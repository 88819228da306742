package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tutorlane/platform-api/internal/model"
	"github.com/tutorlane/platform-api/internal/payload"
	"github.com/tutorlane/platform-api/internal/repository"
	"github.com/tutorlane/platform-api/internal/usecase"
)

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	page := repository.ParsePageParams(r.URL.Query())

	posts, total, err := s.repos.Posts.ListPosts(r.Context(), page)
	if err != nil {
		s.respondInternal(w, err, "failed to list posts")
		return
	}

	respondPage(w, posts, page, len(posts), total)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req payload.CreatePostRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	principal := principalFrom(r.Context())
	guardian, err := s.repos.Guardians.GetGuardianByUserID(r.Context(), principal.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.respondError(w, http.StatusBadRequest, "create a guardian profile first")
			return
		}
		s.respondInternal(w, err, "failed to load guardian profile")
		return
	}

	post, err := s.repos.Posts.CreatePost(r.Context(), &model.Post{
		PostID:     model.NewHumanID("POST"),
		GuardianID: guardian.GuardianID,
		Subject:    req.Subject,
		Class:      req.Class,
		Board:      req.Board,
		Location:   req.Location,
		Budget:     req.Budget,
		Details:    req.Details,
		Status:     model.PostStatusOpen,
	})
	if err != nil {
		s.respondInternal(w, err, "failed to create post")
		return
	}

	respondData(w, http.StatusCreated, post)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.usecases.Post.FindPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			s.respondError(w, http.StatusNotFound, "post not found")
			return
		}
		s.respondInternal(w, err, "failed to get post")
		return
	}

	respondData(w, http.StatusOK, post)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdatePostRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	post, err := s.usecases.Post.FindPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			s.respondError(w, http.StatusNotFound, "post not found")
			return
		}
		s.respondInternal(w, err, "failed to get post")
		return
	}

	updated, err := s.repos.Posts.UpdatePost(r.Context(), post.ID.Hex(), repository.UpdatePostParams{
		Subject:  req.Subject,
		Class:    req.Class,
		Board:    req.Board,
		Location: req.Location,
		Budget:   req.Budget,
		Details:  req.Details,
	})
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondData(w, http.StatusOK, updated)
}

// handleUpdatePostStatus rejects anything outside {open, matched, closed,
// hold} before any write happens.
func (s *Server) handleUpdatePostStatus(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdatePostStatusRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	post, err := s.usecases.Post.UpdateStatus(r.Context(), chi.URLParam(r, "id"), model.PostStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidPostStatus):
			s.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, usecase.ErrPostNotFound):
			s.respondError(w, http.StatusNotFound, "post not found")
		default:
			s.respondInternal(w, err, "failed to update post status")
		}
		return
	}

	respondData(w, http.StatusOK, post)
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	post, err := s.usecases.Post.FindPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			s.respondError(w, http.StatusNotFound, "post not found")
			return
		}
		s.respondInternal(w, err, "failed to get post")
		return
	}

	if post.Status != model.PostStatusOpen {
		s.respondError(w, http.StatusBadRequest, "post is not open for applications")
		return
	}

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

	if _, err := s.repos.Applications.GetApplicationByTeacherAndPost(r.Context(), teacher.ID, post.ID); err == nil {
		s.respondError(w, http.StatusBadRequest, "already applied to this post")
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		s.respondInternal(w, err, "failed to check existing application")
		return
	}

	application, err := s.repos.Applications.CreateApplication(r.Context(), &model.Application{
		TeacherID: teacher.ID,
		PostID:    post.ID,
		Status:    model.ApplicationStatusPending,
	})
	if err != nil {
		// The unique index still catches a racing duplicate.
		if mongo.IsDuplicateKeyError(err) {
			s.respondError(w, http.StatusBadRequest, "already applied to this post")
			return
		}
		s.respondInternal(w, err, "failed to create application")
		return
	}

	if err := s.repos.Posts.AddApplicant(r.Context(), post.ID, teacher.ID); err != nil {
		s.respondInternal(w, err, "failed to record applicant")
		return
	}

	respondData(w, http.StatusCreated, application)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	post, err := s.usecases.Post.FindPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			s.respondError(w, http.StatusNotFound, "post not found")
			return
		}
		s.respondInternal(w, err, "failed to get post")
		return
	}

	deleted, err := s.repos.Posts.DeletePost(r.Context(), post.ID.Hex())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.respondError(w, http.StatusNotFound, "post not found")
			return
		}
		s.respondInternal(w, err, "failed to delete post")
		return
	}

	respondData(w, http.StatusOK, deleted)
}
