// internal/app/store/metrics/metricsstore.go
package metricsstore

import (
	"context"

	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counts is the set of totals shown on the admin dashboard. The division,
// member and program counts are scoped to one period.
type Counts struct {
	Periods   int64
	Positions int64
	Divisions int64
	Members   int64
	Programs  int64

	MembersMale   int64
	MembersFemale int64

	// ProgramsByStatus has one entry per models.ProgramStatuses value.
	ProgramsByStatus map[string]int64
	// ContentsByPage has one entry per models.Pages key.
	ContentsByPage map[string]int64
}

// FetchDashboardCounts returns the dashboard counts. A zero periodID skips
// the period-scoped counters.
// Intentionally tolerant: on error it returns 0 for that counter.
func FetchDashboardCounts(ctx context.Context, db *mongo.Database, periodID primitive.ObjectID) Counts {
	out := Counts{
		ProgramsByStatus: make(map[string]int64, len(models.ProgramStatuses)),
		ContentsByPage:   make(map[string]int64, len(models.Pages)),
	}
	count := func(coll string, filter bson.M) int64 {
		n, err := db.Collection(coll).CountDocuments(ctx, filter)
		if err != nil {
			return 0
		}
		return n
	}

	out.Periods = count("periods", bson.M{})
	out.Positions = count("positions", bson.M{})
	for _, p := range models.Pages {
		out.ContentsByPage[p.Key] = count("page_contents", bson.M{"page": p.Key})
	}

	if periodID.IsZero() {
		return out
	}

	scoped := bson.M{"period_id": periodID}
	out.Divisions = count("divisions", scoped)
	out.Members = count("members", scoped)
	out.MembersMale = count("members", bson.M{"period_id": periodID, "gender": models.GenderMale})
	out.MembersFemale = count("members", bson.M{"period_id": periodID, "gender": models.GenderFemale})
	out.Programs = count("programs", scoped)
	for _, st := range models.ProgramStatuses {
		out.ProgramsByStatus[st] = count("programs", bson.M{"period_id": periodID, "status": st})
	}

	return out
}
