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

const suggestionCollectionName = "suggestions"

// mongoSuggestionRepository implements repository.SuggestionRepository.
type mongoSuggestionRepository struct {
	collection *mongo.Collection
}

func NewMongoSuggestionRepository(db *mongo.Database) repository.SuggestionRepository {
	return &mongoSuggestionRepository{
		collection: db.Collection(suggestionCollectionName),
	}
}

func (r *mongoSuggestionRepository) Create(ctx context.Context, suggestion *domain.Suggestion) (primitive.ObjectID, error) {
	if suggestion.Text == "" {
		return primitive.NilObjectID, errors.New("suggestion requires text")
	}

	suggestion.ID = primitive.NewObjectID()
	if suggestion.Date.IsZero() {
		suggestion.Date = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, suggestion)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted suggestion ID")
	}
	return insertedID, nil
}

func (r *mongoSuggestionRepository) List(ctx context.Context) ([]domain.Suggestion, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	suggestions := []domain.Suggestion{}
	if err := cursor.All(ctx, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}
