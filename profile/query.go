package profile

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrUnknownSort   = errors.New("unknown sort key")
	ErrUnknownFilter = errors.New("unknown filter")
)

// SortKey selects the ordering of the visible subset.
type SortKey int

const (
	SortByName SortKey = iota
	SortBySignal
	SortByLastConnected
)

var sortKeyNames = []string{"name", "signal", "lastConnected"}

func (k SortKey) String() string {
	if int(k) >= 0 && int(k) < len(sortKeyNames) {
		return sortKeyNames[k]
	}
	return fmt.Sprintf("SortKey(%d)", int(k))
}

// Next cycles through the sort keys.
func (k SortKey) Next() SortKey {
	return SortKey((int(k) + 1) % len(sortKeyNames))
}

// ParseSortKey accepts the wire names ("name", "signal", "lastConnected"),
// case-insensitively.
func ParseSortKey(s string) (SortKey, error) {
	for i, name := range sortKeyNames {
		if strings.EqualFold(s, name) {
			return SortKey(i), nil
		}
	}
	return SortByName, fmt.Errorf("%w: %q", ErrUnknownSort, s)
}

// Filter selects a category of records.
type Filter int

const (
	FilterAll Filter = iota
	FilterConnected
	FilterSecured
	FilterOpen
)

var filterNames = []string{"all", "connected", "secured", "open"}

func (f Filter) String() string {
	if int(f) >= 0 && int(f) < len(filterNames) {
		return filterNames[f]
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// Next cycles through the filters.
func (f Filter) Next() Filter {
	return Filter((int(f) + 1) % len(filterNames))
}

// ParseFilter accepts the wire names ("all", "connected", "secured", "open").
func ParseFilter(s string) (Filter, error) {
	for i, name := range filterNames {
		if strings.EqualFold(s, name) {
			return Filter(i), nil
		}
	}
	return FilterAll, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// Query is the transient search/sort/filter state.
type Query struct {
	Search string
	Sort   SortKey
	Filter Filter
}

// Active reports whether the query narrows the record set at all.
func (q Query) Active() bool {
	return q.Search != "" || q.Filter != FilterAll
}

var filterPredicates = map[Filter]func(Record) bool{
	FilterAll:       func(Record) bool { return true },
	FilterConnected: func(r Record) bool { return r.Connected },
	FilterSecured:   func(r Record) bool { return !r.IsOpen() },
	FilterOpen:      func(r Record) bool { return r.IsOpen() },
}

// comparators return <0 when a sorts before b.
var comparators = map[SortKey]func(c *collate.Collator, a, b Record) int{
	SortByName: func(c *collate.Collator, a, b Record) int {
		return c.CompareString(a.Name, b.Name)
	},
	SortBySignal: func(_ *collate.Collator, a, b Record) int {
		return b.Signal - a.Signal
	},
	SortByLastConnected: func(_ *collate.Collator, a, b Record) int {
		return b.LastConnected.Compare(a.LastConnected)
	},
}

// NewCollator returns the collator used for name ordering. Collators are
// not safe for concurrent use; keep one per goroutine.
func NewCollator(tag language.Tag) *collate.Collator {
	return collate.New(tag, collate.IgnoreCase)
}

// Apply derives the visible subset: records passing both the search and the
// filter predicate, ordered by q.Sort with ties broken by ID. The input
// slice is left untouched. A nil collator falls back to English.
func Apply(records []Record, q Query, c *collate.Collator) []Record {
	keep, ok := filterPredicates[q.Filter]
	if !ok {
		keep = filterPredicates[FilterAll]
	}
	cmp, ok := comparators[q.Sort]
	if !ok {
		cmp = comparators[SortByName]
	}
	if c == nil {
		c = NewCollator(language.English)
	}

	needle := strings.ToLower(q.Search)
	visible := make([]Record, 0, len(records))
	for _, r := range records {
		if !strings.Contains(strings.ToLower(r.Name), needle) {
			continue
		}
		if !keep(r) {
			continue
		}
		visible = append(visible, r)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		if d := cmp(c, visible[i], visible[j]); d != 0 {
			return d < 0
		}
		return visible[i].ID < visible[j].ID
	})
	return visible
}

// Engine memoizes Apply: the visible subset is only recomputed when the
// record snapshot or the query changes. An Engine is owned by a single
// goroutine.
type Engine struct {
	collator *collate.Collator

	valid   bool
	records []Record
	query   Query
	visible []Record
}

// NewEngine builds an engine that orders names by the rules of tag.
func NewEngine(tag language.Tag) *Engine {
	return &Engine{collator: NewCollator(tag)}
}

// Visible returns the visible subset for records and q. The returned slice
// is shared between calls with the same inputs and must not be modified.
func (e *Engine) Visible(records []Record, q Query) []Record {
	if e.valid && e.query == q && sameSnapshot(e.records, records) {
		return e.visible
	}
	e.records = records
	e.query = q
	e.visible = Apply(records, q, e.collator)
	e.valid = true
	return e.visible
}

// sameSnapshot compares slice identity, not contents. Snapshots are never
// modified in place, so identity is enough.
func sameSnapshot(a, b []Record) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
