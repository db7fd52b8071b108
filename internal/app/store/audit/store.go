// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event categories
const (
	CategoryAuth  = "auth"
	CategoryAdmin = "admin"
)

// Auth event types
const (
	EventLoginSuccess             = "login_success"
	EventLoginFailedWrongPassword = "login_failed_wrong_password"
	EventLoginFailedUserDisabled  = "login_failed_user_disabled"
	EventLoginFailedRateLimit     = "login_failed_rate_limit"
	EventLogout                   = "logout"
)

// AuthEvents lists the auth event types in display order.
var AuthEvents = []string{
	EventLoginSuccess,
	EventLoginFailedWrongPassword,
	EventLoginFailedUserDisabled,
	EventLoginFailedRateLimit,
	EventLogout,
}

// AdminEvents lists the admin event types in display order.
var AdminEvents = []string{
	EventPeriodActivated,
	EventPeriodDeleted,
	EventDivisionDeleted,
	EventDivisionsReordered,
	EventPositionDeleted,
	EventMemberDeleted,
	EventMembersImported,
	EventProgramDeleted,
	EventContentDeleted,
	EventContentsReordered,
	EventSettingsUpdated,
}

// Admin event types
const (
	EventPeriodActivated    = "period_activated"
	EventPeriodDeleted      = "period_deleted"
	EventDivisionDeleted    = "division_deleted"
	EventDivisionsReordered = "divisions_reordered"
	EventPositionDeleted    = "position_deleted"
	EventMemberDeleted      = "member_deleted"
	EventMembersImported    = "members_imported"
	EventProgramDeleted     = "program_deleted"
	EventContentDeleted     = "content_deleted"
	EventContentsReordered  = "contents_reordered"
	EventSettingsUpdated    = "settings_updated"
)

// Event represents an audit event.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`

	// Event classification
	Category  string `bson:"category"`
	EventType string `bson:"event_type"`

	// Who
	UserID    *primitive.ObjectID `bson:"user_id,omitempty"` // signed-in admin, when known
	ActorName string              `bson:"actor_name,omitempty"`

	// Context
	IP        string `bson:"ip"`
	UserAgent string `bson:"user_agent,omitempty"`

	// Outcome
	Success       bool   `bson:"success"`
	FailureReason string `bson:"failure_reason,omitempty"`

	// Additional details (varies by event type)
	Details map[string]string `bson:"details,omitempty"`
}

// QueryFilter defines filters for querying audit events.
type QueryFilter struct {
	UserID    *primitive.ObjectID
	Category  string
	EventType string
	Since     *time.Time
	Until     *time.Time
	Limit     int64
	Skip      int64
}

// Store manages audit event records.
type Store struct {
	c *mongo.Collection
}

// New creates a new audit Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("audit_events")}
}

// Log records an audit event.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

// Query retrieves audit events matching the given filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(filter.Skip).
		SetLimit(limit)

	cursor, err := s.c.Find(ctx, filter.bson(), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CountByFilter counts the events matching filter, ignoring Limit and Skip.
func (s *Store) CountByFilter(ctx context.Context, filter QueryFilter) (int64, error) {
	return s.c.CountDocuments(ctx, filter.bson())
}

func (f QueryFilter) bson() bson.M {
	query := bson.M{}
	if f.UserID != nil {
		query["user_id"] = f.UserID
	}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.EventType != "" {
		query["event_type"] = f.EventType
	}
	if f.Since != nil || f.Until != nil {
		ts := bson.M{}
		if f.Since != nil {
			ts["$gte"] = *f.Since
		}
		if f.Until != nil {
			ts["$lte"] = *f.Until
		}
		query["timestamp"] = ts
	}
	return query
}

// Recent retrieves the most recent events of one category ("" for all).
func (s *Store) Recent(ctx context.Context, category string, limit int64) ([]Event, error) {
	return s.Query(ctx, QueryFilter{Category: category, Limit: limit})
}

var labels = map[string]string{
	EventLoginSuccess:             "Masuk",
	EventLoginFailedWrongPassword: "Gagal masuk: kata sandi salah",
	EventLoginFailedUserDisabled:  "Gagal masuk: akun nonaktif",
	EventLoginFailedRateLimit:     "Gagal masuk: terlalu banyak percobaan",
	EventLogout:                   "Keluar",
	EventPeriodActivated:          "Mengaktifkan periode",
	EventPeriodDeleted:            "Menghapus periode",
	EventDivisionDeleted:          "Menghapus divisi",
	EventDivisionsReordered:       "Mengubah urutan divisi",
	EventPositionDeleted:          "Menghapus jabatan",
	EventMemberDeleted:            "Menghapus anggota",
	EventMembersImported:          "Mengimpor anggota",
	EventProgramDeleted:           "Menghapus program kerja",
	EventContentDeleted:           "Menghapus konten",
	EventContentsReordered:        "Mengubah urutan konten",
	EventSettingsUpdated:          "Mengubah profil situs",
}

// Label returns the display name of an event type, or the type itself when
// it has none.
func Label(eventType string) string {
	if l, ok := labels[eventType]; ok {
		return l
	}
	return eventType
}
