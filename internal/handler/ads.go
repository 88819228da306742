package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tutorlane/platform-api/internal/model"
	"github.com/tutorlane/platform-api/internal/payload"
	"github.com/tutorlane/platform-api/internal/repository"
	"github.com/tutorlane/platform-api/internal/usecase"
)

// handleActiveAds serves the ads currently eligible for display. Statuses
// are re-derived on every read; the sync is idempotent.
func (s *Server) handleActiveAds(w http.ResponseWriter, r *http.Request) {
	if _, err := s.usecases.Ad.SyncStatuses(r.Context()); err != nil {
		s.respondInternal(w, err, "failed to sync ad statuses")
		return
	}

	ads, err := s.repos.Ads.ListAllAds(r.Context())
	if err != nil {
		s.respondInternal(w, err, "failed to list ads")
		return
	}

	active := make([]*model.Ad, 0, len(ads))
	for _, ad := range ads {
		if ad.Status == model.AdStatusActive {
			active = append(active, ad)
		}
	}

	respondData(w, http.StatusOK, active)
}

func (s *Server) handleTrackAd(w http.ResponseWriter, r *http.Request) {
	var req payload.TrackAdRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	err := s.usecases.Ad.Track(r.Context(), chi.URLParam(r, "id"), req.Kind)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidTrackKind):
			s.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, usecase.ErrAdNotFound):
			s.respondError(w, http.StatusNotFound, "ad not found")
		default:
			s.respondInternal(w, err, "failed to track ad")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleListAds(w http.ResponseWriter, r *http.Request) {
	if _, err := s.usecases.Ad.SyncStatuses(r.Context()); err != nil {
		s.respondInternal(w, err, "failed to sync ad statuses")
		return
	}

	page := repository.ParsePageParams(r.URL.Query())
	ads, total, err := s.repos.Ads.ListAds(r.Context(), page)
	if err != nil {
		s.respondInternal(w, err, "failed to list ads")
		return
	}

	respondPage(w, ads, page, len(ads), total)
}

func (s *Server) handleCreateAd(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateAdRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	start, ok := s.parseAdDate(w, req.StartDate, "startDate")
	if !ok {
		return
	}
	end, ok := s.parseAdDate(w, req.EndDate, "endDate")
	if !ok {
		return
	}

	ad, err := s.repos.Ads.CreateAd(r.Context(), &model.Ad{
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		TargetURL: req.TargetURL,
		Placement: req.Placement,
		StartDate: start,
		EndDate:   end,
		Status:    usecase.ComputeAdStatus(time.Now(), start, end),
	})
	if err != nil {
		s.respondInternal(w, err, "failed to create ad")
		return
	}

	respondData(w, http.StatusCreated, ad)
}

func (s *Server) handleGetAd(w http.ResponseWriter, r *http.Request) {
	ad, err := s.repos.Ads.GetAd(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.respondError(w, http.StatusNotFound, "ad not found")
			return
		}
		s.respondInternal(w, err, "failed to get ad")
		return
	}

	respondData(w, http.StatusOK, ad)
}

func (s *Server) handleUpdateAd(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateAdRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	params := repository.UpdateAdParams{
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		TargetURL: req.TargetURL,
		Placement: req.Placement,
	}
	if req.StartDate != nil {
		start, ok := s.parseAdDate(w, req.StartDate, "startDate")
		if !ok {
			return
		}
		params.StartDate = &start
	}
	if req.EndDate != nil {
		end, ok := s.parseAdDate(w, req.EndDate, "endDate")
		if !ok {
			return
		}
		params.EndDate = &end
	}

	ad, err := s.repos.Ads.UpdateAd(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.respondError(w, http.StatusNotFound, "ad not found")
			return
		}
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Date bounds may have moved; refresh the derived status.
	status := usecase.ComputeAdStatus(time.Now(), ad.StartDate, ad.EndDate)
	if err := s.repos.Ads.SetStatus(r.Context(), ad.ID, status); err != nil {
		s.respondInternal(w, err, "failed to refresh ad status")
		return
	}
	ad.Status = status

	respondData(w, http.StatusOK, ad)
}

func (s *Server) handleDeleteAd(w http.ResponseWriter, r *http.Request) {
	ad, err := s.repos.Ads.DeleteAd(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.respondError(w, http.StatusNotFound, "ad not found")
			return
		}
		s.respondInternal(w, err, "failed to delete ad")
		return
	}

	respondData(w, http.StatusOK, ad)
}

func (s *Server) handleAdAnalytics(w http.ResponseWriter, r *http.Request) {
	objectID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusNotFound, "ad not found")
		return
	}

	records, err := s.repos.AdAnalytics.ListByAd(r.Context(), objectID)
	if err != nil {
		s.respondInternal(w, err, "failed to list ad analytics")
		return
	}

	respondData(w, http.StatusOK, records)
}

// parseAdDate turns an optional RFC 3339 string into a *time.Time; the
// empty string clears the bound.
func (s *Server) parseAdDate(w http.ResponseWriter, raw *string, field string) (*time.Time, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, field+" must be RFC 3339")
		return nil, false
	}
	return &parsed, true
}
