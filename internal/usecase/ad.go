package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tutorlane/platform-api/internal/model"
	"github.com/tutorlane/platform-api/internal/repository"
)

// AdUsecase defines advertisement scheduling and tracking operations.
type AdUsecase interface {
	SyncStatuses(ctx context.Context) (int, error)
	Track(ctx context.Context, adID string, kind string) error
}

var (
	ErrAdNotFound       = errors.New("ad not found")
	ErrInvalidTrackKind = errors.New("track kind must be impression or click")
)

// ComputeAdStatus derives an ad's status purely from its date bounds:
// an end bound in the past wins, then an unreached start bound, otherwise
// the ad is active. No bounds means always active.
func ComputeAdStatus(now time.Time, start, end *time.Time) model.AdStatus {
	if end != nil && end.Before(now) {
		return model.AdStatusExpired
	}
	if start != nil && now.Before(*start) {
		return model.AdStatusScheduled
	}
	return model.AdStatusActive
}

type adUsecase struct {
	adRepo        repository.AdRepository
	analyticsRepo repository.AdAnalyticsRepository
	logger        *zerolog.Logger
}

func NewAdUsecase(
	adRepo repository.AdRepository,
	analyticsRepo repository.AdAnalyticsRepository,
	logger *zerolog.Logger,
) AdUsecase {
	return &adUsecase{
		adRepo:        adRepo,
		analyticsRepo: analyticsRepo,
		logger:        logger,
	}
}

// SyncStatuses recomputes every ad's derived status and persists the ones
// that changed, returning how many were updated. The operation is
// idempotent; invoking it again without time advancing changes nothing.
func (u *adUsecase) SyncStatuses(ctx context.Context) (int, error) {
	ads, err := u.adRepo.ListAllAds(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	updated := 0
	for _, ad := range ads {
		status := ComputeAdStatus(now, ad.StartDate, ad.EndDate)
		if status == ad.Status {
			continue
		}
		if err := u.adRepo.SetStatus(ctx, ad.ID, status); err != nil {
			return updated, err
		}
		updated++
	}

	return updated, nil
}

// Track records one impression or click against the ad's lifetime counters
// and the per-day analytics document for today (UTC).
func (u *adUsecase) Track(ctx context.Context, adID string, kind string) error {
	if kind != "impression" && kind != "click" {
		return ErrInvalidTrackKind
	}

	objectID, err := bson.ObjectIDFromHex(adID)
	if err != nil {
		return ErrAdNotFound
	}

	if _, err := u.adRepo.GetAd(ctx, adID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrAdNotFound
		}
		return err
	}

	if err := u.adRepo.IncrementCounter(ctx, objectID, kind); err != nil {
		return err
	}

	day := time.Now().UTC().Format("2006-01-02")
	return u.analyticsRepo.IncrementDaily(ctx, objectID, day, kind)
}
