package services

import (
	"sort"
	"time"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

const secondsPerDay = 24 * 60 * 60

// DefaultDayZone is the fixed zone calendar days are interpreted in (UTC+9).
var DefaultDayZone = time.FixedZone("UTC+9", 9*60*60)

// baselineAttributes are always retrieved.
var baselineAttributes = []string{
	domain.AttrPID,
	domain.AttrVideoID,
	domain.AttrDescription,
	domain.AttrElapsedTime,
	domain.AttrPublishedOrLiveAt,
}

var partAttributes = map[domain.Part][]string{
	domain.PartVideoDetail: {
		domain.AttrVideoTitle,
		domain.AttrVideoTags,
		domain.AttrThumbnailURL,
		domain.AttrPublishedAt,
		domain.AttrActualStartAt,
	},
	domain.PartVideoTitle:    {domain.AttrVideoTitle},
	domain.PartVideoTags:     {domain.AttrVideoTags},
	domain.PartThumbnailURL:  {domain.AttrThumbnailURL},
	domain.PartActualStartAt: {domain.AttrActualStartAt},
	domain.PartPublishedAt:   {domain.AttrPublishedAt},
}

// QueryCompiler turns a SearchRequest into an EngineQuery.
// It performs no I/O and never fails.
type QueryCompiler struct {
	zone *time.Location
}

// NewQueryCompiler creates a compiler that reads dates in zone.
// A nil zone selects DefaultDayZone.
func NewQueryCompiler(zone *time.Location) *QueryCompiler {
	if zone == nil {
		zone = DefaultDayZone
	}
	return &QueryCompiler{zone: zone}
}

// Zone returns the day zone.
func (c *QueryCompiler) Zone() *time.Location {
	return c.zone
}

// Compile builds the engine query for req.
func (c *QueryCompiler) Compile(req domain.SearchRequest) domain.EngineQuery {
	return domain.EngineQuery{
		Text:       req.Keyword,
		SearchOn:   []string{domain.AttrDescription},
		Clauses:    c.clauses(req),
		Attributes: attributesFor(req.Parts),
		Sort:       []domain.SortField{{Attribute: domain.AttrPublishedOrLiveAt, Descending: true}},
		Page:       req.Page,
		PerPage:    req.PerPage,
		Limit:      req.Limit,
	}
}

func (c *QueryCompiler) clauses(req domain.SearchRequest) []domain.Clause {
	var clauses []domain.Clause
	if len(req.VideoIDs) > 0 {
		clauses = append(clauses, domain.IDIn{IDs: req.VideoIDs})
	}
	if len(req.Tags) > 0 {
		clauses = append(clauses, domain.TagIn{Tags: req.Tags})
	}

	switch {
	case req.At != nil:
		start := c.dayStart(*req.At)
		clauses = append(clauses, domain.DateExact{Start: start, End: start + secondsPerDay})
	case req.From != nil || req.To != nil:
		var r domain.DateRange
		if req.From != nil {
			from := c.dayStart(*req.From)
			r.From = &from
		}
		if req.To != nil {
			before := c.dayStart(*req.To) + secondsPerDay
			r.Before = &before
		}
		clauses = append(clauses, r)
	}
	return clauses
}

func (c *QueryCompiler) dayStart(d domain.Date) int64 {
	return d.In(c.zone).Unix()
}

// attributesFor returns the baseline plus the expansion of parts,
// deduplicated and sorted.
func attributesFor(parts []domain.Part) []string {
	set := make(map[string]struct{}, len(baselineAttributes))
	for _, a := range baselineAttributes {
		set[a] = struct{}{}
	}
	for _, p := range parts {
		for _, a := range partAttributes[p] {
			set[a] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
