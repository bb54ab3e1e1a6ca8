package store

import (
	"sort"
	"strings"

	"github.com/mikios34/choonpaan/entity"
)

// Search keeps the records whose name or email contains query, ignoring
// case. An empty query keeps everything. The result is sorted by name, then
// id, so listings are stable across snapshots.
func Search(records []entity.ProfileRecord, query string) []entity.ProfileRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]entity.ProfileRecord, 0, len(records))
	for _, r := range records {
		if q == "" ||
			strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.Email), q) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ni, nj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if ni != nj {
			return ni < nj
		}
		return out[i].ID < out[j].ID
	})
	return out
}
