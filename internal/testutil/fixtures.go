package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert test %s: %v", coll, err)
	}
}

// CreatePeriod creates a period spanning startYear/startYear+1.
func (f *Fixtures) CreatePeriod(ctx context.Context, name string, startYear int, active bool) models.Period {
	f.t.Helper()
	now := time.Now().UTC()
	p := models.Period{
		ID:          primitive.NewObjectID(),
		CabinetName: name,
		NameCI:      text.Fold(name),
		StartYear:   startYear,
		EndYear:     startYear + 1,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.insert(ctx, "periods", p)
	return p
}

// CreateDivision creates a division in periodID.
func (f *Fixtures) CreateDivision(ctx context.Context, periodID primitive.ObjectID, name, typ string, rank int) models.Division {
	f.t.Helper()
	now := time.Now().UTC()
	d := models.Division{
		ID:        primitive.NewObjectID(),
		PeriodID:  periodID,
		Name:      name,
		NameCI:    text.Fold(name),
		Type:      typ,
		Rank:      rank,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "divisions", d)
	return d
}

// CreatePosition creates a catalog position.
func (f *Fixtures) CreatePosition(ctx context.Context, name, kind string) models.Position {
	f.t.Helper()
	now := time.Now().UTC()
	p := models.Position{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "positions", p)
	return p
}

// CreateMember creates a member of division d. positionID may be nil.
func (f *Fixtures) CreateMember(ctx context.Context, name string, d models.Division, positionID *primitive.ObjectID) models.Member {
	f.t.Helper()
	now := time.Now().UTC()
	m := models.Member{
		ID:         primitive.NewObjectID(),
		FullName:   name,
		FullNameCI: text.Fold(name),
		Gender:     models.GenderFemale,
		PeriodID:   d.PeriodID,
		DivisionID: d.ID,
		PositionID: positionID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "members", m)
	return m
}

// CreateProgram creates a program in periodID. divisionID may be nil.
func (f *Fixtures) CreateProgram(ctx context.Context, title, status string, periodID primitive.ObjectID, divisionID *primitive.ObjectID) models.Program {
	f.t.Helper()
	now := time.Now().UTC()
	p := models.Program{
		ID:         primitive.NewObjectID(),
		Title:      title,
		TitleCI:    text.Fold(title),
		Status:     status,
		PeriodID:   periodID,
		DivisionID: divisionID,
		Date:       &now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "programs", p)
	return p
}

// CreateContent creates a content block on page at rank.
func (f *Fixtures) CreateContent(ctx context.Context, page, title string, rank int) models.PageContent {
	f.t.Helper()
	now := time.Now().UTC()
	c := models.PageContent{
		ID:        primitive.NewObjectID(),
		Page:      page,
		Title:     title,
		Body:      "Isi " + title,
		Rank:      rank,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "page_contents", c)
	return c
}

// CreateAdmin creates an active admin account with the given password.
func (f *Fixtures) CreateAdmin(ctx context.Context, loginID, password string) models.User {
	f.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}
	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     "Admin " + loginID,
		LoginID:      loginID,
		LoginIDCI:    text.Fold(loginID),
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Status:       models.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.insert(ctx, "users", u)
	return u
}
