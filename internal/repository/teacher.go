package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tutorlane/platform-api/internal/model"
)

// TeacherRepository defines the interface for teacher profile operations.
type TeacherRepository interface {
	CreateTeacher(ctx context.Context, teacher *model.Teacher) (*model.Teacher, error)
	GetTeacher(ctx context.Context, id string) (*model.Teacher, error)
	GetTeacherByTeacherID(ctx context.Context, teacherID string) (*model.Teacher, error)
	GetTeacherByUserID(ctx context.Context, userID string) (*model.Teacher, error)
	UpdateTeacher(ctx context.Context, id string, params UpdateTeacherParams) (*model.Teacher, error)
	DeleteTeacher(ctx context.Context, id string) (*model.Teacher, error)
	ListTeachers(ctx context.Context, page PageParams) ([]*model.Teacher, int64, error)
}

// UpdateTeacherParams defines the optional parameters for updating a teacher.
// Only the fields that are not nil will be updated.
type UpdateTeacherParams struct {
	Name           *string
	Phone          *string
	Location       *string
	Qualifications *string
	Subjects       *[]string
	Experience     *string
	Bio            *string
	HourlyRate     *int64
}

const teacherCollection = "teachers"

var teacherSearchFields = []string{"teacher_id", "name", "email", "location", "phone", "qualifications"}

type teacherMongoRepository struct {
	db *mongo.Database
}

func NewTeacherMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) TeacherRepository {
	collection := db.Collection(teacherCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "teacher_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create teacher indexes")
	}

	return &teacherMongoRepository{db: db}
}

func (r *teacherMongoRepository) CreateTeacher(ctx context.Context, teacher *model.Teacher) (*model.Teacher, error) {
	now := time.Now()
	teacher.CreatedAt = now
	teacher.UpdatedAt = now

	result, err := r.db.Collection(teacherCollection).InsertOne(ctx, teacher)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		teacher.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return teacher, nil
}

func (r *teacherMongoRepository) GetTeacher(ctx context.Context, id string) (*model.Teacher, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *teacherMongoRepository) GetTeacherByTeacherID(ctx context.Context, teacherID string) (*model.Teacher, error) {
	return r.findOne(ctx, bson.M{"teacher_id": teacherID})
}

func (r *teacherMongoRepository) GetTeacherByUserID(ctx context.Context, userID string) (*model.Teacher, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *teacherMongoRepository) findOne(ctx context.Context, filter bson.M) (*model.Teacher, error) {
	result := r.db.Collection(teacherCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var teacher model.Teacher
	if err := result.Decode(&teacher); err != nil {
		return nil, err
	}

	return &teacher, nil
}

func (r *teacherMongoRepository) UpdateTeacher(
	ctx context.Context,
	id string,
	params UpdateTeacherParams,
) (*model.Teacher, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.Phone != nil {
		updateMap["phone"] = *params.Phone
	}
	if params.Location != nil {
		updateMap["location"] = *params.Location
	}
	if params.Qualifications != nil {
		updateMap["qualifications"] = *params.Qualifications
	}
	if params.Subjects != nil {
		updateMap["subjects"] = *params.Subjects
	}
	if params.Experience != nil {
		updateMap["experience"] = *params.Experience
	}
	if params.Bio != nil {
		updateMap["bio"] = *params.Bio
	}
	if params.HourlyRate != nil {
		updateMap["hourly_rate"] = *params.HourlyRate
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no teacher fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(teacherCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var teacher model.Teacher
	if err := result.Decode(&teacher); err != nil {
		return nil, err
	}

	return &teacher, nil
}

func (r *teacherMongoRepository) DeleteTeacher(ctx context.Context, id string) (*model.Teacher, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(teacherCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var teacher model.Teacher
	if err := result.Decode(&teacher); err != nil {
		return nil, err
	}

	return &teacher, nil
}

func (r *teacherMongoRepository) ListTeachers(
	ctx context.Context,
	page PageParams,
) ([]*model.Teacher, int64, error) {
	return listPage[model.Teacher](ctx, r.db.Collection(teacherCollection), page, teacherSearchFields)
}
