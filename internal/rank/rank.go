// Package rank computes the company leaderboard from stored ratings.
package rank

import (
	"math"
	"sort"

	"github.com/interntrack/backend/internal/models"
)

// Entry is one leaderboard row.
type Entry struct {
	Company      string  `json:"company"`
	Location     *string `json:"location"`
	Stipend      *int    `json:"stipend"`
	AverageScore float64 `json:"average_score"`
}

// Rank scores every company by the arithmetic mean of its present
// company-level ratings (overall, location, stipend). Companies with
// no rated fields have no defined average and are excluded rather than
// scored zero, so an unreviewed company is never ranked below a badly
// reviewed one. Ordering is descending by score with ties broken by
// name ascending, which makes the output deterministic. Rank reads the
// given snapshot and persists nothing.
func Rank(companies []*models.Company) []Entry {
	entries := make([]Entry, 0, len(companies))
	for _, c := range companies {
		avg, rated := averageScore(c)
		if !rated {
			continue
		}
		entries = append(entries, Entry{
			Company:      c.Name,
			Location:     c.Location,
			Stipend:      c.Stipend,
			AverageScore: avg,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AverageScore != entries[j].AverageScore {
			return entries[i].AverageScore > entries[j].AverageScore
		}
		return entries[i].Company < entries[j].Company
	})

	return entries
}

// averageScore returns the mean of the present rating fields, rounded
// to two decimals, and whether any field was rated at all.
func averageScore(c *models.Company) (float64, bool) {
	sum, n := 0, 0
	for _, r := range []*int{c.RatingCompanyOverall, c.RatingLocation, c.RatingStipend} {
		if r != nil {
			sum += *r
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	avg := float64(sum) / float64(n)
	return math.Round(avg*100) / 100, true
}
