package home

import (
	"context"
	"errors"
	"html/template"
	"sort"

	programstore "github.com/osishub/osishub/internal/app/store/programs"
	"github.com/osishub/osishub/internal/app/system/markdown"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// block is a content block ready for display.
type block struct {
	Title    string
	Body     template.HTML
	ImageURL string
}

func toBlock(c models.PageContent) block {
	return block{Title: c.Title, Body: markdown.ToHTML(c.Body), ImageURL: c.ImageURL}
}

// activePeriod returns the active period, or nil when none is active.
func (h *Handler) activePeriod(ctx context.Context) (*models.Period, error) {
	p, err := h.Periods.Active(ctx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type homeView struct {
	Period   *models.Period
	Hero     *block
	Blocks   []block
	Programs []programCard
}

// loadHome builds the landing page: the beranda block at rank 1 is the hero,
// the other beranda blocks follow, then the latest programs.
func (h *Handler) loadHome(ctx context.Context) (homeView, error) {
	var v homeView

	period, err := h.activePeriod(ctx)
	if err != nil {
		return v, err
	}
	v.Period = period

	contents, err := h.Contents.ListByPage(ctx, models.PageHome)
	if err != nil {
		return v, err
	}
	for i, c := range contents {
		b := toBlock(c)
		if i == 0 && c.Rank == 1 {
			v.Hero = &b
			continue
		}
		v.Blocks = append(v.Blocks, b)
	}

	if period != nil {
		cards, err := h.programCards(ctx, period.ID, "", 3)
		if err != nil {
			return v, err
		}
		v.Programs = cards
	}
	return v, nil
}

type structureMember struct {
	FullName    string
	Position    string
	SubPosition string
	ClassName   string
	Instagram   string
	Quote       string
	PhotoURL    string
}

type structureDivision struct {
	Name        string
	Description string
	Type        string
	LogoURL     string
	Members     []structureMember
}

type structureView struct {
	Period    *models.Period
	Divisions []structureDivision
}

// loadStructure lists the active period's divisions in rank order with
// their members. Within a division, members holding a position come
// first, ordered by position name, then the rest by name.
func (h *Handler) loadStructure(ctx context.Context) (structureView, error) {
	var v structureView

	period, err := h.activePeriod(ctx)
	if err != nil || period == nil {
		return v, err
	}
	v.Period = period

	divisions, err := h.Divisions.ListByPeriod(ctx, period.ID)
	if err != nil {
		return v, err
	}
	members, err := h.Members.ListByPeriod(ctx, period.ID)
	if err != nil {
		return v, err
	}
	positions, err := h.Positions.List(ctx)
	if err != nil {
		return v, err
	}
	posName := make(map[primitive.ObjectID]string, len(positions))
	for _, p := range positions {
		posName[p.ID] = p.Name
	}

	byDivision := make(map[primitive.ObjectID][]structureMember)
	for _, m := range members {
		sm := structureMember{
			FullName:    m.FullName,
			SubPosition: m.SubPosition,
			ClassName:   m.ClassName,
			Instagram:   m.Instagram,
			Quote:       m.Quote,
			PhotoURL:    m.PhotoURL,
		}
		if m.PositionID != nil {
			sm.Position = posName[*m.PositionID]
		}
		byDivision[m.DivisionID] = append(byDivision[m.DivisionID], sm)
	}

	for _, d := range divisions {
		ms := byDivision[d.ID]
		sort.SliceStable(ms, func(i, j int) bool {
			a, b := ms[i].Position, ms[j].Position
			if (a == "") != (b == "") {
				return a != ""
			}
			return a < b
		})
		v.Divisions = append(v.Divisions, structureDivision{
			Name:        d.Name,
			Description: d.Description,
			Type:        d.Type,
			LogoURL:     d.LogoURL,
			Members:     ms,
		})
	}
	return v, nil
}

type programCard struct {
	Title       string
	Date        string
	Status      string
	Division    string
	Responsible string
	Description template.HTML
	EmbedURL    string
}

// programCards loads the period's programs, optionally filtered by status.
// limit <= 0 loads all of them.
func (h *Handler) programCards(ctx context.Context, periodID primitive.ObjectID, status string, limit int) ([]programCard, error) {
	opts := options.Find().SetSort(programstore.DefaultSort())
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	programs, err := h.Programs.Find(ctx, programstore.Filter(periodID, status), opts)
	if err != nil {
		return nil, err
	}
	divisions, err := h.Divisions.ListByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	members, err := h.Members.ListByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	divName := make(map[primitive.ObjectID]string, len(divisions))
	for _, d := range divisions {
		divName[d.ID] = d.Name
	}
	memberName := make(map[primitive.ObjectID]string, len(members))
	for _, m := range members {
		memberName[m.ID] = m.FullName
	}

	out := make([]programCard, 0, len(programs))
	for _, p := range programs {
		c := programCard{
			Title:       p.Title,
			Status:      p.Status,
			Division:    "Umum",
			Description: markdown.ToHTML(p.Description),
			EmbedURL:    p.EmbedURL,
		}
		if p.Date != nil {
			c.Date = p.Date.Format("2 Jan 2006")
		}
		if p.DivisionID != nil {
			c.Division = divName[*p.DivisionID]
		}
		if p.ResponsibleID != nil {
			c.Responsible = memberName[*p.ResponsibleID]
		}
		out = append(out, c)
	}
	return out, nil
}

type programsView struct {
	Period   *models.Period
	Status   string
	Statuses []string
	Programs []programCard
}

func (h *Handler) loadPrograms(ctx context.Context, status string) (programsView, error) {
	v := programsView{Statuses: models.ProgramStatuses}
	if !isStatus(status) {
		status = ""
	}
	v.Status = status

	period, err := h.activePeriod(ctx)
	if err != nil || period == nil {
		return v, err
	}
	v.Period = period
	v.Programs, err = h.programCards(ctx, period.ID, status, 0)
	return v, err
}

func isStatus(s string) bool {
	for _, st := range models.ProgramStatuses {
		if st == s {
			return true
		}
	}
	return false
}

type pageView struct {
	Page   models.PageInfo
	Period *models.Period
	Blocks []block
}

// loadPage returns every block of a content page in rank order.
func (h *Handler) loadPage(ctx context.Context, key string) (pageView, error) {
	var v pageView
	for _, p := range models.Pages {
		if p.Key == key {
			v.Page = p
		}
	}

	period, err := h.activePeriod(ctx)
	if err != nil {
		return v, err
	}
	v.Period = period

	contents, err := h.Contents.ListByPage(ctx, key)
	if err != nil {
		return v, err
	}
	for _, c := range contents {
		v.Blocks = append(v.Blocks, toBlock(c))
	}
	return v, nil
}
