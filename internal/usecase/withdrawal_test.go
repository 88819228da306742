package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/tutorlane/platform-api/internal/model"
)

type withdrawalFixture struct {
	usecase          WithdrawalUsecase
	applicationRepo  *fakeApplicationRepo
	postRepo         *fakePostRepo
	teacherRepo      *fakeTeacherRepo
	notificationRepo *fakeNotificationRepo
	notifier         *fakeNotifier

	teacher     *model.Teacher
	post        *model.Post
	application *model.Application
}

func newWithdrawalFixture(status model.ApplicationStatus) *withdrawalFixture {
	teacher := &model.Teacher{UserID: bson.NewObjectID().Hex(), Name: "Asha Rahman"}
	teacherRepo := newFakeTeacherRepo(teacher)

	post := &model.Post{PostID: "POST-AB12CD34", Subject: "Physics", Status: model.PostStatusOpen}
	postRepo := newFakePostRepo(post)

	application := &model.Application{TeacherID: teacher.ID, PostID: post.ID, Status: status}
	applicationRepo := newFakeApplicationRepo(application)

	post.Applicants = []bson.ObjectID{teacher.ID}

	notificationRepo := newFakeNotificationRepo()
	notifier := &fakeNotifier{}
	logger := zerolog.Nop()

	return &withdrawalFixture{
		usecase: NewWithdrawalUsecase(
			applicationRepo, postRepo, teacherRepo, notificationRepo, notifier, &logger),
		applicationRepo:  applicationRepo,
		postRepo:         postRepo,
		teacherRepo:      teacherRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		teacher:          teacher,
		post:             post,
		application:      application,
	}
}

func TestWithdrawalRequest(t *testing.T) {
	f := newWithdrawalFixture(model.ApplicationStatusPending)

	updated, err := f.usecase.Request(
		context.Background(), f.application.ID.Hex(), f.teacher.UserID, "moving away")
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusWithdrawalRequested, updated.Status)
	require.NotNil(t, updated.Withdrawal)
	assert.Equal(t, "moving away", updated.Withdrawal.Note)

	notification, err := f.notificationRepo.GetByApplicationID(context.Background(), updated.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationTypeWithdrawal, notification.Type)
	assert.Equal(t, model.NotificationStatusPending, notification.Status)
	assert.Equal(t, "moving away", notification.Note)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "Asha Rahman/Physics/moving away", f.notifier.sent[0])
}

func TestWithdrawalRequest_NotTheApplicant(t *testing.T) {
	f := newWithdrawalFixture(model.ApplicationStatusPending)

	stranger := &model.Teacher{
		ID:     bson.NewObjectID(),
		UserID: bson.NewObjectID().Hex(),
		Name:   "Someone Else",
	}
	f.teacherRepo.teachers[stranger.ID] = stranger

	_, err := f.usecase.Request(
		context.Background(), f.application.ID.Hex(), stranger.UserID, "")
	assert.ErrorIs(t, err, ErrNotApplicant)
	assert.Equal(t, model.ApplicationStatusPending, f.application.Status)
}

func TestWithdrawalRequest_NotPending(t *testing.T) {
	f := newWithdrawalFixture(model.ApplicationStatusApproved)

	_, err := f.usecase.Request(
		context.Background(), f.application.ID.Hex(), f.teacher.UserID, "")
	assert.ErrorIs(t, err, ErrApplicationNotPending)
	assert.Empty(t, f.notifier.sent)
}

func TestWithdrawalRequest_MalformedID(t *testing.T) {
	f := newWithdrawalFixture(model.ApplicationStatusPending)

	_, err := f.usecase.Request(context.Background(), "not-a-hex-id", f.teacher.UserID, "")
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestWithdrawalApprove(t *testing.T) {
	f := newWithdrawalFixture(model.ApplicationStatusPending)

	_, err := f.usecase.Request(
		context.Background(), f.application.ID.Hex(), f.teacher.UserID, "moving away")
	require.NoError(t, err)

	err = f.usecase.Approve(context.Background(), f.application.ID.Hex())
	require.NoError(t, err)

	// The application is gone, the teacher is off the post, and the inbox
	// record is approved.
	_, err = f.applicationRepo.GetApplication(context.Background(), f.application.ID.Hex())
	assert.Error(t, err)
	assert.Empty(t, f.post.Applicants)

	notification, err := f.notificationRepo.GetByApplicationID(context.Background(), f.application.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusApproved, notification.Status)
}

func TestWithdrawalApprove_WrongStatusHasNoSideEffects(t *testing.T) {
	f := newWithdrawalFixture(model.ApplicationStatusPending)

	err := f.usecase.Approve(context.Background(), f.application.ID.Hex())
	assert.ErrorIs(t, err, ErrNotWithdrawalRequested)

	// Nothing was deleted or pulled.
	_, getErr := f.applicationRepo.GetApplication(context.Background(), f.application.ID.Hex())
	assert.NoError(t, getErr)
	assert.Equal(t, []bson.ObjectID{f.teacher.ID}, f.post.Applicants)
}

func TestWithdrawalApprove_Missing(t *testing.T) {
	f := newWithdrawalFixture(model.ApplicationStatusPending)

	err := f.usecase.Approve(context.Background(), bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrApplicationNotFound)

	err = f.usecase.Approve(context.Background(), "not-a-hex-id")
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestWithdrawalApprove_RetryAfterInterruption(t *testing.T) {
	f := newWithdrawalFixture(model.ApplicationStatusWithdrawalRequested)
	f.notificationRepo.CreateNotification(context.Background(), &model.AdminNotification{
		Type:          model.NotificationTypeWithdrawal,
		ApplicationID: f.application.ID,
		Status:        model.NotificationStatusPending,
	})

	// The first attempt claims the application but dies on the applicant
	// removal; the document must survive in the in-flight status.
	f.postRepo.pullErr = errors.New("connection reset")
	err := f.usecase.Approve(context.Background(), f.application.ID.Hex())
	require.Error(t, err)

	stranded, getErr := f.applicationRepo.GetApplication(context.Background(), f.application.ID.Hex())
	require.NoError(t, getErr)
	assert.Equal(t, model.ApplicationStatusWithdrawalApproving, stranded.Status)

	// A retry resumes the half-finished approval and completes every effect.
	require.NoError(t, f.usecase.Approve(context.Background(), f.application.ID.Hex()))

	_, getErr = f.applicationRepo.GetApplication(context.Background(), f.application.ID.Hex())
	assert.Error(t, getErr)
	assert.Empty(t, f.post.Applicants)

	notification, err := f.notificationRepo.GetByApplicationID(context.Background(), f.application.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusApproved, notification.Status)
}

func TestWithdrawalApprove_SecondApproveLoses(t *testing.T) {
	f := newWithdrawalFixture(model.ApplicationStatusWithdrawalRequested)
	f.notificationRepo.CreateNotification(context.Background(), &model.AdminNotification{
		Type:          model.NotificationTypeWithdrawal,
		ApplicationID: f.application.ID,
		Status:        model.NotificationStatusPending,
	})

	require.NoError(t, f.usecase.Approve(context.Background(), f.application.ID.Hex()))

	err := f.usecase.Approve(context.Background(), f.application.ID.Hex())
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}
