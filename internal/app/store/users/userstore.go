// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateLoginID   = errors.New("a user with this login ID already exists")
	ErrInvalidCredentials = errors.New("invalid login ID or password")
	ErrDisabled           = errors.New("account is disabled")
	ErrPasswordTooShort   = errors.New("password is too short")
)

// MinPasswordLength is enforced on every password set through the store.
const MinPasswordLength = 8

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Create stores a new admin account with the given plaintext password.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.LoginID = strings.TrimSpace(u.LoginID)
	u.LoginIDCI = text.Fold(u.LoginID)
	u.PasswordHash = hash
	if u.Role == "" {
		u.Role = models.RoleAdmin
	}
	if u.Status == "" {
		u.Status = models.StatusActive
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateLoginID
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByLoginID(ctx context.Context, loginID string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"login_id_ci": text.Fold(strings.TrimSpace(loginID))}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Authenticate checks loginID and password. Unknown users and wrong
// passwords both return ErrInvalidCredentials.
func (s *Store) Authenticate(ctx context.Context, loginID, password string) (models.User, error) {
	u, err := s.GetByLoginID(ctx, loginID)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if u.Status == models.StatusDisabled {
		return models.User{}, ErrDisabled
	}
	return u, nil
}

// SetPassword replaces the password hash.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"password_hash": hash, "updated_at": time.Now().UTC()}})
	return err
}

// TouchLastLogin records a successful sign-in.
func (s *Store) TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"last_login_at": at.UTC()}})
	return err
}

// EnsureAdmin creates the bootstrap admin when no account with loginID
// exists. An existing account is left untouched.
func (s *Store) EnsureAdmin(ctx context.Context, loginID, password, fullName string) (created bool, err error) {
	if _, err := s.GetByLoginID(ctx, loginID); err == nil {
		return false, nil
	} else if err != mongo.ErrNoDocuments {
		return false, err
	}
	if fullName == "" {
		fullName = "Administrator"
	}
	_, err = s.Create(ctx, models.User{FullName: fullName, LoginID: loginID, Role: models.RoleAdmin}, password)
	if errors.Is(err, ErrDuplicateLoginID) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of users matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
