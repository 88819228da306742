package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tutorlane/platform-api/internal/model"
	"github.com/tutorlane/platform-api/internal/repository"
)

// In-memory repository fakes. They implement only the behavior the usecases
// exercise; anything keyed by id returns mongo.ErrNoDocuments on a miss so
// the sentinel mapping under test matches production.

type fakeAdRepo struct {
	ads        map[bson.ObjectID]*model.Ad
	statusSets int
}

func newFakeAdRepo(ads ...*model.Ad) *fakeAdRepo {
	repo := &fakeAdRepo{ads: make(map[bson.ObjectID]*model.Ad)}
	for _, ad := range ads {
		if ad.ID.IsZero() {
			ad.ID = bson.NewObjectID()
		}
		repo.ads[ad.ID] = ad
	}
	return repo
}

func (f *fakeAdRepo) CreateAd(_ context.Context, ad *model.Ad) (*model.Ad, error) {
	ad.ID = bson.NewObjectID()
	f.ads[ad.ID] = ad
	return ad, nil
}

func (f *fakeAdRepo) GetAd(_ context.Context, id string) (*model.Ad, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	ad, ok := f.ads[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return ad, nil
}

func (f *fakeAdRepo) UpdateAd(_ context.Context, id string, _ repository.UpdateAdParams) (*model.Ad, error) {
	return f.GetAd(context.Background(), id)
}

func (f *fakeAdRepo) SetStatus(_ context.Context, id bson.ObjectID, status model.AdStatus) error {
	if ad, ok := f.ads[id]; ok && ad.Status != status {
		ad.Status = status
		f.statusSets++
	}
	return nil
}

func (f *fakeAdRepo) IncrementCounter(_ context.Context, id bson.ObjectID, kind string) error {
	ad, ok := f.ads[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	switch kind {
	case "impression":
		ad.Impressions++
	case "click":
		ad.Clicks++
	}
	return nil
}

func (f *fakeAdRepo) DeleteAd(_ context.Context, id string) (*model.Ad, error) {
	ad, err := f.GetAd(context.Background(), id)
	if err != nil {
		return nil, err
	}
	delete(f.ads, ad.ID)
	return ad, nil
}

func (f *fakeAdRepo) ListAds(_ context.Context, _ repository.PageParams) ([]*model.Ad, int64, error) {
	ads, _ := f.ListAllAds(context.Background())
	return ads, int64(len(ads)), nil
}

func (f *fakeAdRepo) ListAllAds(_ context.Context) ([]*model.Ad, error) {
	ads := make([]*model.Ad, 0, len(f.ads))
	for _, ad := range f.ads {
		ads = append(ads, ad)
	}
	return ads, nil
}

type dailyKey struct {
	adID bson.ObjectID
	day  string
}

type fakeAnalyticsRepo struct {
	counters map[dailyKey]map[string]int64
}

func newFakeAnalyticsRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{counters: make(map[dailyKey]map[string]int64)}
}

func (f *fakeAnalyticsRepo) IncrementDaily(_ context.Context, adID bson.ObjectID, day string, kind string) error {
	key := dailyKey{adID: adID, day: day}
	if f.counters[key] == nil {
		f.counters[key] = make(map[string]int64)
	}
	f.counters[key][kind]++
	return nil
}

func (f *fakeAnalyticsRepo) ListByAd(_ context.Context, adID bson.ObjectID) ([]*model.AdAnalytics, error) {
	var records []*model.AdAnalytics
	for key, counts := range f.counters {
		if key.adID != adID {
			continue
		}
		records = append(records, &model.AdAnalytics{
			AdID:        key.adID,
			Day:         key.day,
			Impressions: counts["impression"],
			Clicks:      counts["click"],
		})
	}
	return records, nil
}

type fakePostRepo struct {
	posts map[bson.ObjectID]*model.Post

	// pullErr is returned by the next PullApplicant call, then cleared.
	pullErr error
}

func newFakePostRepo(posts ...*model.Post) *fakePostRepo {
	repo := &fakePostRepo{posts: make(map[bson.ObjectID]*model.Post)}
	for _, post := range posts {
		if post.ID.IsZero() {
			post.ID = bson.NewObjectID()
		}
		repo.posts[post.ID] = post
	}
	return repo
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *model.Post) (*model.Post, error) {
	post.ID = bson.NewObjectID()
	f.posts[post.ID] = post
	return post, nil
}

func (f *fakePostRepo) GetPost(_ context.Context, id string) (*model.Post, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	post, ok := f.posts[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return post, nil
}

func (f *fakePostRepo) GetPostByPostID(_ context.Context, postID string) (*model.Post, error) {
	for _, post := range f.posts {
		if post.PostID == postID {
			return post, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakePostRepo) UpdatePost(_ context.Context, id string, _ repository.UpdatePostParams) (*model.Post, error) {
	return f.GetPost(context.Background(), id)
}

func (f *fakePostRepo) SetStatus(_ context.Context, id bson.ObjectID, status model.PostStatus) (*model.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	post.Status = status
	return post, nil
}

func (f *fakePostRepo) AddApplicant(_ context.Context, postID, teacherID bson.ObjectID) error {
	post, ok := f.posts[postID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for _, existing := range post.Applicants {
		if existing == teacherID {
			return nil
		}
	}
	post.Applicants = append(post.Applicants, teacherID)
	return nil
}

func (f *fakePostRepo) PullApplicant(_ context.Context, postID, teacherID bson.ObjectID) error {
	if f.pullErr != nil {
		err := f.pullErr
		f.pullErr = nil
		return err
	}
	post, ok := f.posts[postID]
	if !ok {
		return nil
	}
	kept := post.Applicants[:0]
	for _, existing := range post.Applicants {
		if existing != teacherID {
			kept = append(kept, existing)
		}
	}
	post.Applicants = kept
	return nil
}

func (f *fakePostRepo) DeletePost(_ context.Context, id string) (*model.Post, error) {
	post, err := f.GetPost(context.Background(), id)
	if err != nil {
		return nil, err
	}
	delete(f.posts, post.ID)
	return post, nil
}

func (f *fakePostRepo) ListPosts(_ context.Context, _ repository.PageParams) ([]*model.Post, int64, error) {
	posts := make([]*model.Post, 0, len(f.posts))
	for _, post := range f.posts {
		posts = append(posts, post)
	}
	return posts, int64(len(posts)), nil
}

type fakeApplicationRepo struct {
	applications map[bson.ObjectID]*model.Application
}

func newFakeApplicationRepo(applications ...*model.Application) *fakeApplicationRepo {
	repo := &fakeApplicationRepo{applications: make(map[bson.ObjectID]*model.Application)}
	for _, application := range applications {
		if application.ID.IsZero() {
			application.ID = bson.NewObjectID()
		}
		repo.applications[application.ID] = application
	}
	return repo
}

func (f *fakeApplicationRepo) CreateApplication(_ context.Context, application *model.Application) (*model.Application, error) {
	application.ID = bson.NewObjectID()
	if application.Status == "" {
		application.Status = model.ApplicationStatusPending
	}
	f.applications[application.ID] = application
	return application, nil
}

func (f *fakeApplicationRepo) GetApplication(_ context.Context, id string) (*model.Application, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	application, ok := f.applications[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return application, nil
}

func (f *fakeApplicationRepo) GetApplicationByTeacherAndPost(
	_ context.Context,
	teacherID, postID bson.ObjectID,
) (*model.Application, error) {
	for _, application := range f.applications {
		if application.TeacherID == teacherID && application.PostID == postID {
			return application, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeApplicationRepo) MarkWithdrawalRequested(
	_ context.Context,
	id bson.ObjectID,
	note string,
	at time.Time,
) (*model.Application, error) {
	application, ok := f.applications[id]
	if !ok || application.Status != model.ApplicationStatusPending {
		return nil, mongo.ErrNoDocuments
	}
	application.Status = model.ApplicationStatusWithdrawalRequested
	application.Withdrawal = &model.Withdrawal{Note: note, RequestedAt: at}
	return application, nil
}

func (f *fakeApplicationRepo) TransitionStatus(
	_ context.Context,
	id bson.ObjectID,
	from, to model.ApplicationStatus,
) (*model.Application, error) {
	application, ok := f.applications[id]
	if !ok || application.Status != from {
		return nil, mongo.ErrNoDocuments
	}
	application.Status = to
	return application, nil
}

func (f *fakeApplicationRepo) DeleteIfStatus(
	_ context.Context,
	id bson.ObjectID,
	status model.ApplicationStatus,
) (*model.Application, error) {
	application, ok := f.applications[id]
	if !ok || application.Status != status {
		return nil, mongo.ErrNoDocuments
	}
	delete(f.applications, id)
	return application, nil
}

func (f *fakeApplicationRepo) SetStatus(
	_ context.Context,
	id bson.ObjectID,
	status model.ApplicationStatus,
) (*model.Application, error) {
	application, ok := f.applications[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	application.Status = status
	return application, nil
}

func (f *fakeApplicationRepo) ListApplicationsByPost(_ context.Context, postID bson.ObjectID) ([]*model.Application, error) {
	var out []*model.Application
	for _, application := range f.applications {
		if application.PostID == postID {
			out = append(out, application)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) ListApplicationsByTeacher(_ context.Context, teacherID bson.ObjectID) ([]*model.Application, error) {
	var out []*model.Application
	for _, application := range f.applications {
		if application.TeacherID == teacherID {
			out = append(out, application)
		}
	}
	return out, nil
}

type fakeTeacherRepo struct {
	teachers map[bson.ObjectID]*model.Teacher
}

func newFakeTeacherRepo(teachers ...*model.Teacher) *fakeTeacherRepo {
	repo := &fakeTeacherRepo{teachers: make(map[bson.ObjectID]*model.Teacher)}
	for _, teacher := range teachers {
		if teacher.ID.IsZero() {
			teacher.ID = bson.NewObjectID()
		}
		repo.teachers[teacher.ID] = teacher
	}
	return repo
}

func (f *fakeTeacherRepo) CreateTeacher(_ context.Context, teacher *model.Teacher) (*model.Teacher, error) {
	teacher.ID = bson.NewObjectID()
	f.teachers[teacher.ID] = teacher
	return teacher, nil
}

func (f *fakeTeacherRepo) GetTeacher(_ context.Context, id string) (*model.Teacher, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	teacher, ok := f.teachers[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return teacher, nil
}

func (f *fakeTeacherRepo) GetTeacherByTeacherID(_ context.Context, teacherID string) (*model.Teacher, error) {
	for _, teacher := range f.teachers {
		if teacher.TeacherID == teacherID {
			return teacher, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeTeacherRepo) GetTeacherByUserID(_ context.Context, userID string) (*model.Teacher, error) {
	for _, teacher := range f.teachers {
		if teacher.UserID == userID {
			return teacher, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeTeacherRepo) UpdateTeacher(_ context.Context, id string, _ repository.UpdateTeacherParams) (*model.Teacher, error) {
	return f.GetTeacher(context.Background(), id)
}

func (f *fakeTeacherRepo) DeleteTeacher(_ context.Context, id string) (*model.Teacher, error) {
	teacher, err := f.GetTeacher(context.Background(), id)
	if err != nil {
		return nil, err
	}
	delete(f.teachers, teacher.ID)
	return teacher, nil
}

func (f *fakeTeacherRepo) ListTeachers(_ context.Context, _ repository.PageParams) ([]*model.Teacher, int64, error) {
	teachers := make([]*model.Teacher, 0, len(f.teachers))
	for _, teacher := range f.teachers {
		teachers = append(teachers, teacher)
	}
	return teachers, int64(len(teachers)), nil
}

type fakeNotificationRepo struct {
	notifications map[bson.ObjectID]*model.AdminNotification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[bson.ObjectID]*model.AdminNotification)}
}

func (f *fakeNotificationRepo) CreateNotification(
	_ context.Context,
	notification *model.AdminNotification,
) (*model.AdminNotification, error) {
	notification.ID = bson.NewObjectID()
	f.notifications[notification.ID] = notification
	return notification, nil
}

func (f *fakeNotificationRepo) GetByApplicationID(
	_ context.Context,
	applicationID bson.ObjectID,
) (*model.AdminNotification, error) {
	for _, notification := range f.notifications {
		if notification.ApplicationID == applicationID {
			return notification, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeNotificationRepo) MarkApproved(_ context.Context, applicationID bson.ObjectID) error {
	for _, notification := range f.notifications {
		if notification.ApplicationID == applicationID && notification.Status == model.NotificationStatusPending {
			notification.Status = model.NotificationStatusApproved
		}
	}
	return nil
}

func (f *fakeNotificationRepo) ListNotifications(
	_ context.Context,
	_ repository.PageParams,
) ([]*model.AdminNotification, int64, error) {
	out := make([]*model.AdminNotification, 0, len(f.notifications))
	for _, notification := range f.notifications {
		out = append(out, notification)
	}
	return out, int64(len(out)), nil
}

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) NotifyWithdrawalRequested(teacherName, postSubject, note string) error {
	f.sent = append(f.sent, teacherName+"/"+postSubject+"/"+note)
	return nil
}
