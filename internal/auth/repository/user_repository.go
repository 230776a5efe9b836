package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	authdomain "campusbuddy-backend/internal/auth/domain"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// userRepository implements UserRepository on a MongoDB collection.
type userRepository struct {
	collection *mongo.Collection
	log        *logrus.Logger
}

// NewUserRepository creates a new instance of userRepository and ensures
// the unique email index exists.
func NewUserRepository(db *mongo.Database, log *logrus.Logger) UserRepository {
	collection := db.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.WithError(err).Warn("failed to create unique email index")
	}

	return &userRepository{collection: collection, log: log}
}

func (r *userRepository) Create(ctx context.Context, user *authdomain.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if user.RefreshTokens == nil {
		user.RefreshTokens = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return authdomain.ErrEmailTaken
		}
		r.log.WithError(err).Error("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*authdomain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var user authdomain.User
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id, name string, college authdomain.College) (*authdomain.User, error) {
	return r.findOneAndSet(ctx, id, bson.M{
		"name":    name,
		"college": college,
	})
}

func (r *userRepository) List(ctx context.Context, search string, skip, limit int64) ([]*authdomain.User, int64, error) {
	filter := bson.M{}
	if search != "" {
		rx := primitive.Regex{Pattern: search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"email": rx},
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*authdomain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, total, nil
}

// Refresh tokens are mutated only with $push/$pull so concurrent logins
// and logouts cannot overwrite each other's entries.

func (r *userRepository) PushRefreshToken(ctx context.Context, id, token string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return authdomain.ErrUserNotFound
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"refresh_tokens": token}})
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	if res.MatchedCount == 0 {
		return authdomain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) PullRefreshToken(ctx context.Context, id, token string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return authdomain.ErrUserNotFound
	}

	if _, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"refresh_tokens": token}}); err != nil {
		return fmt.Errorf("failed to remove refresh token: %w", err)
	}
	return nil
}

func (r *userRepository) HasRefreshToken(ctx context.Context, id, token string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": oid, "refresh_tokens": token})
	if err != nil {
		return false, fmt.Errorf("failed to check refresh token: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) SetBlocked(ctx context.Context, id string, blocked bool) (*authdomain.User, error) {
	return r.findOneAndSet(ctx, id, bson.M{"is_blocked": blocked})
}

func (r *userRepository) SetPremium(ctx context.Context, id string, premium bool, expiry *time.Time) (*authdomain.User, error) {
	set := bson.M{"is_premium": premium}
	if premium {
		set["premium_expiry"] = expiry
	} else {
		set["premium_expiry"] = nil
	}
	return r.findOneAndSet(ctx, id, set)
}

func (r *userRepository) SetRole(ctx context.Context, id, role string) (*authdomain.User, error) {
	return r.findOneAndSet(ctx, id, bson.M{"role": role})
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return authdomain.ErrUserNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return authdomain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) findOneAndSet(ctx context.Context, id string, set bson.M) (*authdomain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, authdomain.ErrUserNotFound
	}

	set["updated_at"] = time.Now()

	res := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if res.Err() != nil {
		if errors.Is(res.Err(), mongo.ErrNoDocuments) {
			return nil, authdomain.ErrUserNotFound
		}
		r.log.WithError(res.Err()).WithField("id", id).Error("failed to update user")
		return nil, fmt.Errorf("failed to update user: %w", res.Err())
	}

	var user authdomain.User
	if err := res.Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode updated user: %w", err)
	}
	return &user, nil
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
