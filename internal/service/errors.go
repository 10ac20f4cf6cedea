package service

import (
	"fmt"
	"strings"
)

// NoResultsError indicates that the web search returned no usable sources
// for a query.
type NoResultsError struct {
	Query string
}

func (e NoResultsError) Error() string {
	return fmt.Sprintf("no search results found for %q", e.Query)
}

// SourceError records the terminal failure for a single source URL during
// a pipeline run.
type SourceError struct {
	URL string
	Err error
}

func (e SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.URL, e.Err)
}

func (e SourceError) Unwrap() error {
	return e.Err
}

// ExtractionError indicates that every source in a run failed extraction.
// It keeps all per-source failures; Error renders the first few so a
// twenty-source run doesn't flood the terminal.
type ExtractionError struct {
	Query   string
	Sources []SourceError
}

func (e ExtractionError) Error() string {
	const maxShown = 3
	var b strings.Builder
	fmt.Fprintf(&b, "extraction failed for all %d sources for %q:", len(e.Sources), e.Query)
	for i, src := range e.Sources {
		if i == maxShown {
			fmt.Fprintf(&b, " (and %d more)", len(e.Sources)-maxShown)
			break
		}
		fmt.Fprintf(&b, "\n  %s", src.Error())
	}
	return b.String()
}
