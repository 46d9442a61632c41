package services

import (
	"sort"

	"github.com/campusfind/campusfind-backend/internal/dto"
)

// recentActivity orders entries newest first and caps the result. Ties keep
// their input order so reported entries stay ahead of same-instant claims.
func recentActivity(entries []dto.ActivityEntry, limit int) []dto.ActivityEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
