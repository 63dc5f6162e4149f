package models

// RatingMin and RatingMax bound every user-supplied rating value.
const (
	RatingMin = 1
	RatingMax = 5
)

// Project is a project associated with a company. The rating is nil
// until a user rates it.
type Project struct {
	Name   string `json:"name" msgpack:"name"`
	Rating *int   `json:"rating" msgpack:"rating"`
}

// Company is the unified record merged from the two spreadsheet
// sources. Name is the primary key; matching is exact and
// case-sensitive. Location, BusinessDomain and Stipend are nil when the
// source files did not provide them.
type Company struct {
	Name                 string    `json:"company"`
	Location             *string   `json:"location"`
	BusinessDomain       *string   `json:"business_domain"`
	Tags                 []string  `json:"tags"`
	Stipend              *int      `json:"stipend"`
	Projects             []Project `json:"projects"`
	RatingCompanyOverall *int      `json:"rating_company_overall"`
	RatingLocation       *int      `json:"rating_location"`
	RatingStipend        *int      `json:"rating_stipend"`
	ReachedLinkedin      bool      `json:"reached_linkedin"`
	Remarks              string    `json:"remarks"`
}

// ProjectNamed reports whether the company already carries a project
// with the given name.
func (c *Company) ProjectNamed(name string) bool {
	for _, p := range c.Projects {
		if p.Name == name {
			return true
		}
	}
	return false
}

func cloneRating(r *int) *int {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}
