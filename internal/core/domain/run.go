package domain

import "time"

// RunStatus is the outcome of an ingestion run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// RunSource says where an ingestion run read its videos from.
type RunSource string

const (
	// SourceProvider is the live video provider.
	SourceProvider RunSource = "provider"
	// SourceDump is a JSON dump on disk.
	SourceDump RunSource = "dump"
)

// IngestRun records one pass of fetch, extract and upsert.
type IngestRun struct {
	ID        string
	ChannelID string
	Source    RunSource
	Status    RunStatus

	VideosFetched   int
	VideosIndexed   int
	ChaptersIndexed int
	Failures        int

	Error     string
	StartedAt time.Time
	EndedAt   time.Time
}

// Duration returns how long the run took, or zero while it is running.
func (r *IngestRun) Duration() time.Duration {
	if r.EndedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}
