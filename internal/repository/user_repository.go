package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/lms-service/internal/domain"
)

const usersCollection = "users"

// UserListFilter narrows and pages the user listing.
type UserListFilter struct {
	Role  *domain.Role
	Skip  int64
	Limit int64
}

// UserRepository defines persistence access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter UserListFilter) ([]domain.User, error)
	Count(ctx context.Context, filter UserListFilter) (int64, error)
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository returns a Mongo-backed implementation.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{collection: db.Collection(usersCollection)}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	update := bson.M{"$set": bson.M{
		"email":         user.Email,
		"password":      user.PasswordHash,
		"role":          user.Role,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"date_of_birth": user.DateOfBirth,
		"phone_number":  user.PhoneNumber,
		"address":       user.Address,
		"gender":        user.Gender,
		"updated_at":    user.UpdatedAt,
	}}
	res, err := r.collection.UpdateByID(ctx, user.ID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var user domain.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter UserListFilter) ([]domain.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(filter.Skip)
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.collection.Find(ctx, listQuery(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context, filter UserListFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, listQuery(filter))
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func listQuery(filter UserListFilter) bson.M {
	query := bson.M{}
	if filter.Role != nil {
		query["role"] = *filter.Role
	}
	return query
}
