package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/titangym/backend/internal/domain"
	"github.com/titangym/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const attendanceCollectionName = "attendance"

// mongoAttendanceRepository implements repository.AttendanceRepository.
type mongoAttendanceRepository struct {
	collection *mongo.Collection
}

func NewMongoAttendanceRepository(db *mongo.Database) repository.AttendanceRepository {
	return &mongoAttendanceRepository{
		collection: db.Collection(attendanceCollectionName),
	}
}

// Append inserts a punch. No update or delete methods exist on purpose.
func (r *mongoAttendanceRepository) Append(ctx context.Context, record *domain.AttendanceRecord) (primitive.ObjectID, error) {
	if record.ProfileID == primitive.NilObjectID || record.Type == "" {
		return primitive.NilObjectID, errors.New("attendance record requires profileId and type")
	}

	record.ID = primitive.NewObjectID()
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted attendance ID")
	}
	return insertedID, nil
}

// LastByProfile returns the most recent punch for a profile, used to
// derive whether they are currently checked in.
func (r *mongoAttendanceRepository) LastByProfile(ctx context.Context, profileID primitive.ObjectID) (*domain.AttendanceRecord, error) {
	var record domain.AttendanceRecord
	filter := bson.M{"profileId": profileID}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *mongoAttendanceRepository) ListByProfile(ctx context.Context, profileID primitive.ObjectID) ([]domain.AttendanceRecord, error) {
	return r.find(ctx, bson.M{"profileId": profileID})
}

func (r *mongoAttendanceRepository) ListAll(ctx context.Context) ([]domain.AttendanceRecord, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoAttendanceRepository) find(ctx context.Context, filter bson.M) ([]domain.AttendanceRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.AttendanceRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CountSince counts punches at or after the given instant.
func (r *mongoAttendanceRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"timestamp": bson.M{"$gte": since}})
}

// EnsureAttendanceIndexes creates necessary indexes for the attendance collection.
func EnsureAttendanceIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "profileId", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
