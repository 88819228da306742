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

// WithdrawalUsecase drives the application withdrawal lifecycle:
// a teacher requests to leave a post, and an admin approves it.
type WithdrawalUsecase interface {
	Request(ctx context.Context, applicationID, teacherUserID, note string) (*model.Application, error)
	Approve(ctx context.Context, applicationID string) error
}

var (
	ErrApplicationNotFound    = errors.New("application not found")
	ErrNotApplicant           = errors.New("only the applicant may request withdrawal")
	ErrApplicationNotPending  = errors.New("withdrawal can only be requested for a pending application")
	ErrNotWithdrawalRequested = errors.New("application is not in withdrawal-requested status")
)

// withdrawalNotifier is the narrow mail surface the usecase needs.
type withdrawalNotifier interface {
	NotifyWithdrawalRequested(teacherName, postSubject, note string) error
}

type withdrawalUsecase struct {
	applicationRepo  repository.ApplicationRepository
	postRepo         repository.PostRepository
	teacherRepo      repository.TeacherRepository
	notificationRepo repository.NotificationRepository
	notifier         withdrawalNotifier
	logger           *zerolog.Logger
}

func NewWithdrawalUsecase(
	applicationRepo repository.ApplicationRepository,
	postRepo repository.PostRepository,
	teacherRepo repository.TeacherRepository,
	notificationRepo repository.NotificationRepository,
	notifier withdrawalNotifier,
	logger *zerolog.Logger,
) WithdrawalUsecase {
	return &withdrawalUsecase{
		applicationRepo:  applicationRepo,
		postRepo:         postRepo,
		teacherRepo:      teacherRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		logger:           logger,
	}
}

// Request transitions the teacher's own pending application to
// withdrawal-requested and mirrors it into the admin inbox. The transition
// is a conditional update, so a concurrent duplicate request loses.
func (u *withdrawalUsecase) Request(
	ctx context.Context,
	applicationID, teacherUserID, note string,
) (*model.Application, error) {
	if _, err := bson.ObjectIDFromHex(applicationID); err != nil {
		return nil, ErrApplicationNotFound
	}

	application, err := u.applicationRepo.GetApplication(ctx, applicationID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	teacher, err := u.teacherRepo.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotApplicant
		}
		return nil, err
	}
	if application.TeacherID != teacher.ID {
		return nil, ErrNotApplicant
	}

	updated, err := u.applicationRepo.MarkWithdrawalRequested(ctx, application.ID, note, time.Now())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrApplicationNotPending
		}
		return nil, err
	}

	if _, err := u.notificationRepo.CreateNotification(ctx, &model.AdminNotification{
		Type:          model.NotificationTypeWithdrawal,
		ApplicationID: updated.ID,
		TeacherID:     updated.TeacherID,
		PostID:        updated.PostID,
		Note:          note,
		Status:        model.NotificationStatusPending,
	}); err != nil {
		return nil, err
	}

	// Admin mail is best effort; the inbox record is the source of truth.
	if u.notifier != nil {
		subject := ""
		if post, err := u.postRepo.GetPost(ctx, updated.PostID.Hex()); err == nil {
			subject = post.Subject
		}
		if err := u.notifier.NotifyWithdrawalRequested(teacher.Name, subject, note); err != nil {
			u.logger.Error().Err(err).Msg("failed to send withdrawal request mail")
		}
	}

	return updated, nil
}

// Approve claims the application with a conditional status transition
// (withdrawal-requested -> withdrawal-approving); that transition is the
// serialization point, so concurrent approvals cannot double-process. The
// dependent effects (removing the teacher from the post's applicants,
// marking the inbox record approved) are idempotent and run under the
// approving status; the application is deleted last. A failure between the
// claim and the delete leaves the document in withdrawal-approving, and a
// retried Approve resumes from there.
func (u *withdrawalUsecase) Approve(ctx context.Context, applicationID string) error {
	objectID, err := bson.ObjectIDFromHex(applicationID)
	if err != nil {
		return ErrApplicationNotFound
	}

	application, err := u.applicationRepo.TransitionStatus(
		ctx,
		objectID,
		model.ApplicationStatusWithdrawalRequested,
		model.ApplicationStatusWithdrawalApproving,
	)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}
		application, err = u.applicationRepo.GetApplication(ctx, applicationID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrApplicationNotFound
			}
			return err
		}
		// A document already in withdrawal-approving is a half-finished
		// approval; fall through and re-run the idempotent effects.
		if application.Status != model.ApplicationStatusWithdrawalApproving {
			return ErrNotWithdrawalRequested
		}
	}

	if err := u.postRepo.PullApplicant(ctx, application.PostID, application.TeacherID); err != nil {
		u.logger.Error().Err(err).
			Str("application_id", applicationID).
			Msg("withdrawal approval interrupted before applicant removal")
		return err
	}

	if err := u.notificationRepo.MarkApproved(ctx, application.ID); err != nil {
		u.logger.Error().Err(err).
			Str("application_id", applicationID).
			Msg("withdrawal approval interrupted before notification update")
		return err
	}

	if _, err := u.applicationRepo.DeleteIfStatus(
		ctx,
		application.ID,
		model.ApplicationStatusWithdrawalApproving,
	); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	return nil
}
