package engine

import (
	"context"

	"github.com/krizhnx/internyx/internal/model"
)

// Stats summarizes the owner's collection for the dashboard overview
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	Recent   int            `json:"recent"`
	Remote   int            `json:"remote"`
	OnSite   int            `json:"on_site"`
	Hybrid   int            `json:"hybrid"`
}

// Stats computes status, recency and location breakdowns over the loaded
// collection. Recent counts applications with an applied date in the last
// 30 days.
func (s *Session) Stats(ctx context.Context) (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	stats := &Stats{ByStatus: make(map[string]int)}
	stats.Total = len(s.apps)

	cutoff := s.now().AddDate(0, 0, -30).Format("2006-01-02")
	for i := range s.apps {
		app := &s.apps[i]
		stats.ByStatus[app.Status]++

		if app.AppliedDate != "" && app.AppliedDate >= cutoff {
			stats.Recent++
		}

		switch app.Location {
		case model.LocationRemote:
			stats.Remote++
		case model.LocationOnSite:
			stats.OnSite++
		case model.LocationHybrid:
			stats.Hybrid++
		}
	}

	return stats, nil
}
