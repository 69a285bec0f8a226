package client

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fitpulse/athlete-tracker/models"
)

// SportAll disables sport filtering in Enrich.
const SportAll = ""

// UnknownSport is substituted when a ranked entry has no matching
// athlete record in the cache.
const UnknownSport = "Unknown"

// EnrichedEntry is a display-ready leaderboard row: the server's ranked
// entry joined with the locally cached athlete record.
type EnrichedEntry struct {
	Rank         int
	Athlete      models.Athlete
	TotalScore   float64
	AverageScore float64
	TestScore    *models.TestScore
}

// Enrich joins server-ranked entries with cached athlete records and
// assigns display ranks. It is pure: recomputed from its two inputs on
// every call, no state, no side effects.
//
// The join prefers athlete id; entries without one fall back to a
// best-effort name match. Entries with no match at all get a placeholder
// athlete (raw name, sport "Unknown", zero id). When sport is not
// SportAll, entries are filtered by the post-substitution sport and ranks
// are reindexed so rank always means "position within the displayed set".
// Relative order among surviving entries is never changed.
func Enrich(entries []models.LeaderboardEntry, athletes []models.Athlete, sport string) []EnrichedEntry {
	byID := make(map[int]models.Athlete, len(athletes))
	byName := make(map[string]models.Athlete, len(athletes))
	for _, athlete := range athletes {
		byID[athlete.ID] = athlete
		if _, taken := byName[athlete.Name]; !taken {
			byName[athlete.Name] = athlete
		}
	}

	enriched := make([]EnrichedEntry, 0, len(entries))
	for _, entry := range entries {
		athlete, ok := byID[entry.AthleteID]
		if !ok {
			athlete, ok = byName[entry.AthleteName]
		}
		if !ok {
			athlete = models.Athlete{
				Name:  entry.AthleteName,
				Sport: UnknownSport,
			}
		}

		if sport != SportAll && athlete.Sport != sport {
			continue
		}

		enriched = append(enriched, EnrichedEntry{
			Rank:         len(enriched) + 1,
			Athlete:      athlete,
			TotalScore:   entry.TotalScore,
			AverageScore: entry.AverageScore,
			TestScore:    entry.TestScore,
		})
	}

	return enriched
}

// Sports returns the distinct sports present in the athlete list, in
// first-seen order, for filter pickers.
func Sports(athletes []models.Athlete) []string {
	seen := make(map[string]bool, len(athletes))
	sports := make([]string, 0, len(athletes))
	for _, athlete := range athletes {
		if !seen[athlete.Sport] {
			seen[athlete.Sport] = true
			sports = append(sports, athlete.Sport)
		}
	}
	return sports
}

// CSVFileName is the default export file name.
const CSVFileName = "leaderboard.csv"

// WriteCSV writes the currently displayed leaderboard as CSV: a header
// row then one row per entry.
func WriteCSV(w io.Writer, entries []EnrichedEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Rank", "Name", "Sport", "Total Score"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			strconv.Itoa(entry.Rank),
			entry.Athlete.Name,
			entry.Athlete.Sport,
			strconv.FormatFloat(entry.TotalScore, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
