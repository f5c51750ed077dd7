package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/innowise/auth-service/internal/core/domain"
)

const (
	authCollection     = "auth_users"
	countersCollection = "counters"
)

// AuthRepository implements ports.AuthRepository using MongoDB.
//
// User IDs are numeric (the token contract carries userId as an integer), so
// they are allocated from a counters document instead of ObjectIDs.
type AuthRepository struct {
	users    *mongo.Collection
	counters *mongo.Collection
}

func NewAuthRepository(db *mongo.Database) *AuthRepository {
	return &AuthRepository{
		users:    db.Collection(authCollection),
		counters: db.Collection(countersCollection),
	}
}

type userDoc struct {
	ID                    int64     `bson:"_id"`
	Username              string    `bson:"username"`
	Email                 string    `bson:"email"`
	PasswordHash          string    `bson:"password_hash"`
	Role                  string    `bson:"role"`
	Enabled               bool      `bson:"enabled"`
	AccountNonLocked      bool      `bson:"account_non_locked"`
	AccountNonExpired     bool      `bson:"account_non_expired"`
	CredentialsNonExpired bool      `bson:"credentials_non_expired"`
	CreatedAt             time.Time `bson:"created_at"`
	UpdatedAt             time.Time `bson:"updated_at"`
}

func toDomain(d *userDoc) *domain.User {
	return &domain.User{
		ID:                    d.ID,
		Username:              d.Username,
		Email:                 d.Email,
		PasswordHash:          d.PasswordHash,
		Role:                  domain.Role(d.Role),
		Enabled:               d.Enabled,
		AccountNonLocked:      d.AccountNonLocked,
		AccountNonExpired:     d.AccountNonExpired,
		CredentialsNonExpired: d.CredentialsNonExpired,
		CreatedAt:             d.CreatedAt.UTC(),
		UpdatedAt:             d.UpdatedAt.UTC(),
	}
}

// EnsureIndexes creates the unique indexes that are the ultimate guarantee
// against duplicate usernames and emails; the service-level existence checks
// are only a best-effort pre-check.
func (r *AuthRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("ensure auth indexes: %w", err)
	}
	return nil
}

// nextID atomically increments and returns the user id sequence.
func (r *AuthRepository) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": authCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate user id: %w", err)
	}
	return counter.Seq, nil
}

func (r *AuthRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}

	doc := userDoc{
		ID:                    id,
		Username:              user.Username,
		Email:                 user.Email,
		PasswordHash:          user.PasswordHash,
		Role:                  string(user.Role),
		Enabled:               user.Enabled,
		AccountNonLocked:      user.AccountNonLocked,
		AccountNonExpired:     user.AccountNonExpired,
		CredentialsNonExpired: user.CredentialsNonExpired,
		CreatedAt:             user.CreatedAt.UTC(),
		UpdatedAt:             user.UpdatedAt.UTC(),
	}

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, r.conflictFor(ctx, user.Username)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := user
	created.ID = id
	return created, nil
}

// conflictFor names the field that lost the uniqueness race. The username
// index is checked first, matching the registration precedence order.
func (r *AuthRepository) conflictFor(ctx context.Context, username string) error {
	taken, err := r.ExistsByUsername(ctx, username)
	if err == nil && taken {
		return domain.ErrUsernameTaken
	}
	return domain.ErrEmailTaken
}

func (r *AuthRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *AuthRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AuthRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AuthRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomain(&doc), nil
}

func (r *AuthRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, bson.M{"username": username})
}

func (r *AuthRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.M{"email": email})
}

func (r *AuthRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	n, err := r.users.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	return n > 0, nil
}

func (r *AuthRepository) UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error) {
	update := bson.M{"$set": bson.M{
		"role":       string(role),
		"updated_at": time.Now().UTC(),
	}}

	var doc userDoc
	err := r.users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update role: %w", err)
	}
	return toDomain(&doc), nil
}
