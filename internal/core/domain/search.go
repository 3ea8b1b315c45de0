package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Search request bounds.
const (
	MinKeywordLength = 1
	MaxKeywordLength = 100
	MaxPage          = 1000
	DefaultPerPage   = 25
	MaxPerPage       = 100
	DefaultLimit     = 1000
)

// Part names a logical group of denormalised fields a caller may request.
type Part string

const (
	// PartVideoDetail expands to every video detail field.
	PartVideoDetail Part = "videoDetail"
	// PartVideoTitle is the video title.
	PartVideoTitle Part = "videoTitle"
	// PartVideoTags is the video tag list.
	PartVideoTags Part = "videoTags"
	// PartThumbnailURL is the default thumbnail url.
	PartThumbnailURL Part = "thumbnailUrl"
	// PartActualStartAt is the live start time.
	PartActualStartAt Part = "actualStartAt"
	// PartPublishedAt is the publish time.
	PartPublishedAt Part = "publishedAt"
)

// AllParts lists the valid part names in display order.
func AllParts() []Part {
	return []Part{
		PartVideoDetail, PartVideoTitle, PartVideoTags,
		PartThumbnailURL, PartActualStartAt, PartPublishedAt,
	}
}

// ParsePart converts a part name to a Part.
func ParsePart(s string) (Part, error) {
	name := strings.TrimSpace(s)
	for _, p := range AllParts() {
		if string(p) == name {
			return p, nil
		}
	}
	names := make([]string, 0, len(AllParts()))
	for _, p := range AllParts() {
		names = append(names, string(p))
	}
	return "", fmt.Errorf("%w: unknown part %q (valid parts: %s)", ErrInvalidInput, name, strings.Join(names, ", "))
}

// ParseParts parses a comma-separated part list. Empty entries are ignored.
func ParseParts(s string) ([]Part, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var parts []Part
	for _, field := range strings.Split(s, ",") {
		if strings.TrimSpace(field) == "" {
			continue
		}
		p, err := ParsePart(field)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}

// Date is a calendar day without a zone. The query compiler decides
// which fixed zone the day is interpreted in.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses an ISO "2006-01-02" date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// In returns midnight of the day in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// SearchRequest is the structured search input.
type SearchRequest struct {
	// Keyword is the free-text query, 1 to 100 characters.
	Keyword string

	// VideoIDs restricts hits to these videos when non-empty.
	VideoIDs []string

	// Tags restricts hits to videos carrying any of these tags when non-empty.
	Tags []string

	// From and To bound the publish/live day, both inclusive.
	From *Date
	To   *Date

	// At selects a single day and overrides From and To.
	At *Date

	// Parts selects extra denormalised fields.
	Parts []Part

	// Page is 1-based.
	Page    int
	PerPage int

	// Limit caps the number of hits the engine considers.
	Limit int
}

// NewSearchRequest returns a request for keyword with default paging.
func NewSearchRequest(keyword string) SearchRequest {
	return SearchRequest{
		Keyword: keyword,
		Page:    1,
		PerPage: DefaultPerPage,
		Limit:   DefaultLimit,
	}
}

// Validate checks the request bounds.
func (r *SearchRequest) Validate() error {
	n := utf8.RuneCountInString(r.Keyword)
	if n < MinKeywordLength || n > MaxKeywordLength {
		return fmt.Errorf("%w: keyword must be %d to %d characters", ErrInvalidInput, MinKeywordLength, MaxKeywordLength)
	}
	if r.Page < 1 || r.Page > MaxPage {
		return fmt.Errorf("%w: page must be between 1 and %d", ErrInvalidInput, MaxPage)
	}
	if r.PerPage < 1 || r.PerPage > MaxPerPage {
		return fmt.Errorf("%w: perPage must be between 1 and %d", ErrInvalidInput, MaxPerPage)
	}
	if r.Limit < 1 || r.Limit > DefaultLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, DefaultLimit)
	}
	return nil
}

// SearchResultPage is one page of chapter hits.
type SearchResultPage struct {
	Items      []ChapterDocument `json:"items"`
	Page       int               `json:"page"`
	PerPage    int               `json:"perPage"`
	TotalPages int               `json:"totalPages"`
	TotalHits  int               `json:"totalHits"`
}

// TotalPages returns ceil(totalHits / perPage), or 0 when perPage is not positive.
func TotalPages(totalHits, perPage int) int {
	if perPage <= 0 || totalHits <= 0 {
		return 0
	}
	return (totalHits + perPage - 1) / perPage
}
