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

const customerCollectionName = "customers"

// mongoCustomerRepository implements repository.CustomerRepository using MongoDB.
type mongoCustomerRepository struct {
	collection *mongo.Collection
}

func NewMongoCustomerRepository(db *mongo.Database) repository.CustomerRepository {
	return &mongoCustomerRepository{
		collection: db.Collection(customerCollectionName),
	}
}

// Create inserts a new customer.
func (r *mongoCustomerRepository) Create(ctx context.Context, customer *domain.Customer) (primitive.ObjectID, error) {
	if customer.Email == "" || customer.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("customer email and password hash are required")
	}

	customer.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	if customer.RegistrationDate.IsZero() {
		customer.RegistrationDate = now
	}

	result, err := r.collection.InsertOne(ctx, customer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoCustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *mongoCustomerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// List returns all customers, most recently registered first.
func (r *mongoCustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "registrationDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	customers := []domain.Customer{}
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// Update replaces the mutable fields of a customer. The active routine
// pointer has its own dedicated write, SetActiveRoutine.
func (r *mongoCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	filter := bson.M{"_id": customer.ID}
	update := bson.M{"$set": bson.M{
		"name":           customer.Name,
		"email":          customer.Email,
		"passwordHash":   customer.PasswordHash,
		"status":         customer.Status,
		"membershipType": customer.MembershipPlan,
		"amountPaid":     customer.AmountPaid,
		"expiryDate":     customer.ExpiryDate,
		"updatedAt":      time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoCustomerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoCustomerRepository) SetActiveRoutine(ctx context.Context, id, routineID primitive.ObjectID) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{
		"activeRoutineId": routineID,
		"updatedAt":       time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureCustomerIndexes creates necessary indexes for the customers collection.
func EnsureCustomerIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
