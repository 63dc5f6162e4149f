// merger.go - Joins the two parsed row sequences into unified Company records
package ingest

import (
	"github.com/interntrack/backend/internal/models"
)

// MergeRows builds the unified Company set from the two parsed files.
//
// Company-details rows are the authoritative source for identity,
// location, business domain, tags and projects. The first row for a
// name wins the scalar fields; repeated rows accumulate tags and
// projects in first-seen order without duplicates. Stipend rows are
// folded in by exact case-sensitive name; a stipend row with no
// company-details match still creates a minimal record, since dropping
// it would lose ranking input. The result preserves first-appearance
// order and is deterministic for a given input, so re-running the same
// files yields an identical set.
func MergeRows(companyRows []models.CompanyRow, stipendRows []models.StipendRow) []*models.Company {
	byName := make(map[string]*models.Company)
	var order []string

	for _, row := range companyRows {
		c, ok := byName[row.Name]
		if !ok {
			c = &models.Company{Name: row.Name}
			if row.Location != "" {
				loc := row.Location
				c.Location = &loc
			}
			if row.BusinessDomain != "" {
				dom := row.BusinessDomain
				c.BusinessDomain = &dom
			}
			byName[row.Name] = c
			order = append(order, row.Name)
		}
		c.Tags = appendUnique(c.Tags, row.Tags)
		for _, p := range row.Projects {
			if !c.ProjectNamed(p) {
				c.Projects = append(c.Projects, models.Project{Name: p})
			}
		}
	}

	for _, row := range stipendRows {
		c, ok := byName[row.Name]
		if !ok {
			c = &models.Company{Name: row.Name}
			byName[row.Name] = c
			order = append(order, row.Name)
		}
		if c.Stipend == nil {
			amount := row.Stipend
			c.Stipend = &amount
		}
	}

	out := make([]*models.Company, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	return out
}

func appendUnique(dst []string, src []string) []string {
	for _, s := range src {
		dup := false
		for _, have := range dst {
			if have == s {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, s)
		}
	}
	return dst
}
