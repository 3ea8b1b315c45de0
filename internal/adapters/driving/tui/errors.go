package tui

import "errors"

// ErrMissingSearchService is returned by NewApp when Ports.Search is nil.
var ErrMissingSearchService = errors.New("tui: a search service is required")
