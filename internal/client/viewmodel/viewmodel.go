// Package viewmodel derives the display list the CLI renders from the
// current query state and the latest fetched results.
//
// The model owns no data beyond the query parameters and the most recent
// result per slot. Exactly one source is active at a time: a sufficiently
// long search text selects the search oracle, anything else selects the
// category-filtered listing. Results are applied with the query they were
// fetched for; a result whose query no longer matches the active one is
// discarded rather than rendered (stale-response suppression).
package viewmodel

import (
	"sync"
	"unicode/utf8"

	"github.com/tommieseals/asset-tracker/internal/client/models"
)

// DefaultSearchMinLength is the query length (in runes) at which the search
// oracle takes over from the filtered listing.
const DefaultSearchMinLength = 3

// Source identifies which data source feeds the display list.
type Source int

const (
	SourceListing Source = iota
	SourceSearch
)

func (s Source) String() string {
	if s == SourceSearch {
		return "search"
	}
	return "listing"
}

// Query is the user-controlled state: free-form search text and an optional
// category filter. Not persisted; it resets with the session.
type Query struct {
	SearchText     string
	CategoryFilter string
}

// View is the derived display state handed to the renderer.
type View struct {
	Query   Query
	Source  Source
	Assets  []models.Asset
	Err     error

	Summary    *models.DashboardSummary
	SummaryErr error
}

// Model combines the query state with the latest result per slot. Safe for
// concurrent use; appliers and readers may run from different goroutines.
type Model struct {
	mu           sync.Mutex
	minSearchLen int

	query Query

	listingAssets   []models.Asset
	listingCategory string
	listingErr      error
	listingSet      bool

	searchAssets []models.Asset
	searchText   string
	searchErr    error
	searchSet    bool

	summary    *models.DashboardSummary
	summaryErr error
}

// NewModel builds a model. minSearchLen <= 0 selects the default.
func NewModel(minSearchLen int) *Model {
	if minSearchLen <= 0 {
		minSearchLen = DefaultSearchMinLength
	}
	return &Model{minSearchLen: minSearchLen}
}

// SetQuery replaces the query state. Previously applied results stay cached;
// whether they are rendered is decided per View call by matching them
// against the query they were fetched for.
func (m *Model) SetQuery(q Query) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.query = q
}

// Query returns the current query state.
func (m *Model) Query() Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.query
}

// Source reports which data source the current query selects.
func (m *Model) Source() Source {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sourceLocked()
}

func (m *Model) sourceLocked() Source {
	if utf8.RuneCountInString(m.query.SearchText) >= m.minSearchLen {
		return SourceSearch
	}
	return SourceListing
}

// ApplyListing records a listing result fetched for the given category.
// The result is dropped when the category filter has changed since the
// fetch started.
func (m *Model) ApplyListing(category string, assets []models.Asset, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if category != m.query.CategoryFilter {
		return
	}
	m.listingAssets, m.listingCategory, m.listingErr, m.listingSet = assets, category, err, true
}

// ApplySearch records a search result fetched for the given text. The
// result is dropped when the search text has changed since the fetch
// started.
func (m *Model) ApplySearch(searchText string, assets []models.Asset, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if searchText != m.query.SearchText {
		return
	}
	m.searchAssets, m.searchText, m.searchErr, m.searchSet = assets, searchText, err, true
}

// ApplySummary records the dashboard result. The summary has no query
// parameters, so it is never stale in the suppression sense.
func (m *Model) ApplySummary(summary *models.DashboardSummary, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summary, m.summaryErr = summary, err
}

// View derives the display state. Only the active slot contributes assets
// and an error; a failure in the inactive slot never surfaces. A cached
// result whose query no longer matches the active query is withheld.
func (m *Model) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := View{
		Query:      m.query,
		Source:     m.sourceLocked(),
		Summary:    m.summary,
		SummaryErr: m.summaryErr,
	}

	switch v.Source {
	case SourceSearch:
		if m.searchSet && m.searchText == m.query.SearchText {
			v.Assets, v.Err = m.searchAssets, m.searchErr
		}
	default:
		if m.listingSet && m.listingCategory == m.query.CategoryFilter {
			v.Assets, v.Err = m.listingAssets, m.listingErr
		}
	}
	return v
}
