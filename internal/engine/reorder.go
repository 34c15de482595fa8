package engine

import "github.com/krizhnx/internyx/internal/model"

// Move performs a single-element list move: the record at from is removed and
// reinserted at to, preserving every other relative position. Out-of-range
// indexes return the slice unchanged. The resulting ordering is session-local
// and is replaced by created-at ordering on the next refetch.
func Move(apps []model.Application, from, to int) []model.Application {
	if from < 0 || from >= len(apps) || to < 0 || to >= len(apps) || from == to {
		return apps
	}

	moved := apps[from]

	rest := make([]model.Application, 0, len(apps)-1)
	rest = append(rest, apps[:from]...)
	rest = append(rest, apps[from+1:]...)

	out := make([]model.Application, 0, len(apps))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return out
}
