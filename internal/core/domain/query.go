package domain

// Clause is one AND-ed predicate of a compiled query.
// The concrete types below form a closed set; adapters switch on them
// to render their own filter grammar.
type Clause interface {
	clause()
}

// IDIn matches chapters whose video id is in IDs.
type IDIn struct {
	IDs []string
}

// TagIn matches chapters whose video carries any of Tags.
type TagIn struct {
	Tags []string
}

// DateRange bounds publishedOrLiveAt in unix seconds.
// From is inclusive, Before is exclusive. Either may be nil.
type DateRange struct {
	From   *int64
	Before *int64
}

// DateExact matches publishedOrLiveAt in [Start, End).
type DateExact struct {
	Start int64
	End   int64
}

func (IDIn) clause()      {}
func (TagIn) clause()     {}
func (DateRange) clause() {}
func (DateExact) clause() {}

// SortField orders hits on a document attribute.
type SortField struct {
	Attribute  string
	Descending bool
}

// EngineQuery is the engine-agnostic form of a SearchRequest.
type EngineQuery struct {
	// Text is the keyword, verbatim.
	Text string

	// SearchOn lists the attributes the engine matches Text against.
	SearchOn []string

	// Clauses are joined with AND. Empty means no filter.
	Clauses []Clause

	// Attributes is the retrieve allow-list, sorted.
	Attributes []string

	// Sort is fixed by the compiler.
	Sort []SortField

	Page    int
	PerPage int
	Limit   int
}

// RawSearchResult is what a search engine returns before assembly.
// Metadata fields are pointers so absence can be told apart from zero.
type RawSearchResult struct {
	Hits        [][]byte
	Page        *int
	HitsPerPage *int
	TotalPages  *int
	TotalHits   *int
}

// Chapter document attribute names.
const (
	AttrPID               = "pid"
	AttrVideoID           = "videoId"
	AttrDescription       = "description"
	AttrElapsedTime       = "elapsedTime"
	AttrPublishedOrLiveAt = "publishedOrLiveAt"
	AttrVideoTitle        = "videoDetails.videoTitle"
	AttrVideoTags         = "videoDetails.videoTags"
	AttrThumbnailURL      = "videoDetails.thumbnailUrl"
	AttrPublishedAt       = "videoDetails.publishedAt"
	AttrActualStartAt     = "videoDetails.actualStartAt"
)
