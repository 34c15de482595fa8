package engine

import (
	"strings"

	"github.com/krizhnx/internyx/internal/model"
)

// FilterAll is the wildcard value for the status, location and tab axes
const FilterAll = "all"

// Filter composes the search, status, location, tag and tab predicates.
// All axes are ANDed together; tag selection requires the record to carry
// every selected tag.
type Filter struct {
	Search   string   `json:"search"`
	Status   string   `json:"status"`
	Location string   `json:"location"`
	Tags     []string `json:"tags"`
	Tab      string   `json:"tab"`
}

// NewFilter returns a filter matching everything
func NewFilter() Filter {
	return Filter{Status: FilterAll, Location: FilterAll, Tab: FilterAll}
}

// Active reports whether any axis narrows the result set
func (f Filter) Active() bool {
	return f.Search != "" ||
		(f.Status != "" && f.Status != FilterAll) ||
		(f.Location != "" && f.Location != FilterAll) ||
		len(f.Tags) > 0 ||
		(f.Tab != "" && f.Tab != FilterAll)
}

// Equal reports whether two filters select the same records
func (f Filter) Equal(other Filter) bool {
	if f.Search != other.Search || f.Status != other.Status ||
		f.Location != other.Location || f.Tab != other.Tab {
		return false
	}
	if len(f.Tags) != len(other.Tags) {
		return false
	}
	for i := range f.Tags {
		if f.Tags[i] != other.Tags[i] {
			return false
		}
	}
	return true
}

// Matches evaluates the combined predicate against one record
func (f Filter) Matches(app *model.Application) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(app.CompanyName), term) &&
			!strings.Contains(strings.ToLower(app.Role), term) {
			return false
		}
	}

	if f.Status != "" && f.Status != FilterAll && app.Status != f.Status {
		return false
	}

	if f.Location != "" && f.Location != FilterAll && app.Location != f.Location {
		return false
	}

	for _, tag := range f.Tags {
		if !app.HasTag(tag) {
			return false
		}
	}

	if f.Tab != "" && f.Tab != FilterAll && app.Status != f.Tab {
		return false
	}

	return true
}

// Apply returns the order-preserving filtered view of apps. The underlying
// collection is never mutated.
func (f Filter) Apply(apps []model.Application) []model.Application {
	filtered := make([]model.Application, 0, len(apps))
	for i := range apps {
		if f.Matches(&apps[i]) {
			filtered = append(filtered, apps[i])
		}
	}
	return filtered
}

// WithoutTag returns the filter with the named tag removed from the selection
func (f Filter) WithoutTag(name string) Filter {
	tags := make([]string, 0, len(f.Tags))
	for _, t := range f.Tags {
		if t != name {
			tags = append(tags, t)
		}
	}
	f.Tags = tags
	return f
}
