package client

import (
	"strings"
	"testing"

	"github.com/fitpulse/athlete-tracker/models"
)

func sampleAthletes() []models.Athlete {
	return []models.Athlete{
		{ID: 1, Name: "A. Smith", Sport: "Track"},
		{ID: 2, Name: "C. Lee", Sport: "Soccer"},
		{ID: 3, Name: "D. Kim", Sport: "Track"},
	}
}

func sampleEntries() []models.LeaderboardEntry {
	return []models.LeaderboardEntry{
		{Rank: 1, AthleteID: 2, AthleteName: "C. Lee", TotalScore: 300, AverageScore: 150},
		{Rank: 2, AthleteID: 1, AthleteName: "A. Smith", TotalScore: 250, AverageScore: 125},
		{Rank: 3, AthleteName: "B. Jones", TotalScore: 200, AverageScore: 200},
		{Rank: 4, AthleteID: 3, AthleteName: "D. Kim", TotalScore: 150, AverageScore: 150},
	}
}

func TestEnrichJoinsByIDAndSubstitutesUnknown(t *testing.T) {
	enriched := Enrich(sampleEntries(), sampleAthletes(), SportAll)

	if len(enriched) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(enriched))
	}
	if enriched[0].Athlete.ID != 2 || enriched[0].Athlete.Sport != "Soccer" {
		t.Fatalf("id join failed: %+v", enriched[0].Athlete)
	}

	// "B. Jones" is on the board but not in the cache.
	unknown := enriched[2]
	if unknown.Athlete.Name != "B. Jones" {
		t.Fatalf("unknown entry must keep the raw name: %+v", unknown.Athlete)
	}
	if unknown.Athlete.Sport != UnknownSport {
		t.Fatalf("unknown entry must get sport %q, got %q", UnknownSport, unknown.Athlete.Sport)
	}
	if unknown.Athlete.ID != 0 {
		t.Fatalf("unknown entry must have zero id, got %d", unknown.Athlete.ID)
	}
}

func TestEnrichFallsBackToNameMatch(t *testing.T) {
	// Entry without an id; resolvable by name.
	entries := []models.LeaderboardEntry{
		{Rank: 1, AthleteName: "D. Kim", TotalScore: 100},
	}

	enriched := Enrich(entries, sampleAthletes(), SportAll)
	if len(enriched) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(enriched))
	}
	if enriched[0].Athlete.ID != 3 || enriched[0].Athlete.Sport != "Track" {
		t.Fatalf("name fallback failed: %+v", enriched[0].Athlete)
	}
}

func TestEnrichPrefersIDOverName(t *testing.T) {
	// Two cached athletes share a name; the entry's id disambiguates.
	athletes := []models.Athlete{
		{ID: 1, Name: "A. Smith", Sport: "Track"},
		{ID: 2, Name: "A. Smith", Sport: "Soccer"},
	}
	entries := []models.LeaderboardEntry{
		{Rank: 1, AthleteID: 2, AthleteName: "A. Smith", TotalScore: 100},
	}

	enriched := Enrich(entries, athletes, SportAll)
	if enriched[0].Athlete.ID != 2 || enriched[0].Athlete.Sport != "Soccer" {
		t.Fatalf("id must win over name: %+v", enriched[0].Athlete)
	}
}

func TestEnrichSportFilterReindexesRanks(t *testing.T) {
	enriched := Enrich(sampleEntries(), sampleAthletes(), "Track")

	if len(enriched) != 2 {
		t.Fatalf("expected 2 Track entries, got %d", len(enriched))
	}
	// Relative order preserved: A. Smith outranked D. Kim before the filter.
	if enriched[0].Athlete.Name != "A. Smith" || enriched[1].Athlete.Name != "D. Kim" {
		t.Fatalf("filter must not reorder survivors: %+v", enriched)
	}
	for i, entry := range enriched {
		if entry.Rank != i+1 {
			t.Fatalf("ranks must be contiguous 1-based: entry %d has rank %d", i, entry.Rank)
		}
	}
}

func TestEnrichEmptyInputs(t *testing.T) {
	if got := Enrich(nil, sampleAthletes(), SportAll); len(got) != 0 {
		t.Fatalf("nil entries must enrich to empty, got %d", len(got))
	}
	if got := Enrich(sampleEntries(), nil, "Track"); len(got) != 0 {
		t.Fatalf("no cached athletes and a sport filter must yield nothing, got %d", len(got))
	}
}

func TestSportsDistinctFirstSeen(t *testing.T) {
	sports := Sports(sampleAthletes())
	if len(sports) != 2 || sports[0] != "Track" || sports[1] != "Soccer" {
		t.Fatalf("unexpected sports: %v", sports)
	}
}

func TestWriteCSV(t *testing.T) {
	enriched := Enrich(sampleEntries(), sampleAthletes(), SportAll)

	var buf strings.Builder
	if err := WriteCSV(&buf, enriched); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := "Rank,Name,Sport,Total Score\n" +
		"1,C. Lee,Soccer,300\n" +
		"2,A. Smith,Track,250\n" +
		"3,B. Jones,Unknown,200\n" +
		"4,D. Kim,Track,150\n"
	if buf.String() != want {
		t.Fatalf("unexpected CSV output:\n%s\nwant:\n%s", buf.String(), want)
	}
}
