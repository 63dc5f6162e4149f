package rank

import (
	"testing"

	"github.com/interntrack/backend/internal/models"
)

func ratedCompany(name string, overall, location, stipend *int) *models.Company {
	return &models.Company{
		Name:                 name,
		RatingCompanyOverall: overall,
		RatingLocation:       location,
		RatingStipend:        stipend,
	}
}

func intp(v int) *int { return &v }

func TestRankExcludesUnratedCompanies(t *testing.T) {
	companies := []*models.Company{
		ratedCompany("Rated", intp(4), nil, nil),
		ratedCompany("Unrated", nil, nil, nil),
	}

	entries := Rank(companies)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Company != "Rated" {
		t.Errorf("expected Rated, got %s", entries[0].Company)
	}
}

func TestRankOrderAndTieBreak(t *testing.T) {
	companies := []*models.Company{
		ratedCompany("Beta", intp(4), intp(5), nil),  // 4.5
		ratedCompany("Gamma", intp(3), nil, nil),     // 3.0
		ratedCompany("Alpha", intp(5), intp(4), nil), // 4.5
	}

	entries := Rank(companies)
	want := []string{"Alpha", "Beta", "Gamma"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, name := range want {
		if entries[i].Company != name {
			t.Errorf("position %d: expected %s, got %s", i, name, entries[i].Company)
		}
	}
	if entries[0].AverageScore != 4.5 || entries[2].AverageScore != 3.0 {
		t.Errorf("unexpected scores: %+v", entries)
	}
}

func TestRankAveragesOnlyPresentFields(t *testing.T) {
	// one rated field: the mean is that field, not a third of it
	entries := Rank([]*models.Company{ratedCompany("Solo", nil, nil, intp(5))})
	if len(entries) != 1 || entries[0].AverageScore != 5.0 {
		t.Fatalf("expected average 5.0, got %+v", entries)
	}
}

func TestRankRoundsToTwoDecimals(t *testing.T) {
	// (5+4+1)/3 = 3.3333...
	entries := Rank([]*models.Company{ratedCompany("Acme", intp(5), intp(4), intp(1))})
	if entries[0].AverageScore != 3.33 {
		t.Errorf("expected 3.33, got %v", entries[0].AverageScore)
	}
}

func TestRankIgnoresProjectRatings(t *testing.T) {
	c := ratedCompany("Acme", nil, nil, nil)
	c.Projects = []models.Project{{Name: "Infra", Rating: intp(5)}}

	if entries := Rank([]*models.Company{c}); len(entries) != 0 {
		t.Errorf("project ratings alone must not rank a company: %+v", entries)
	}
}
