package models

import (
	"encoding/json"
	"fmt"
)

// ValidationError reports a patch field that failed validation. The
// whole patch is rejected; nothing is applied.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Message)
}

// OptionalRating is a tri-state JSON field: absent (leave unchanged),
// null (clear the rating), or an integer (set it).
type OptionalRating struct {
	Set   bool
	Value *int
}

// UnmarshalJSON is only called when the key is present, which is what
// distinguishes "absent" from "null".
func (o *OptionalRating) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON keeps round-trips sane for logging and tests.
func (o OptionalRating) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

func (o OptionalRating) validate(field string) error {
	if !o.Set || o.Value == nil {
		return nil
	}
	if *o.Value < RatingMin || *o.Value > RatingMax {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("rating must be between %d and %d, got %d", RatingMin, RatingMax, *o.Value),
		}
	}
	return nil
}

// ProjectRatingPatch targets one of the company's projects by name.
// Entries naming an unknown project are ignored: the project list is
// owned by ingestion, not by the client.
type ProjectRatingPatch struct {
	Name   string         `json:"name"`
	Rating OptionalRating `json:"rating"`
}

// RatingPatch is the body of a company update. Every field is
// optional; only present fields are applied, and application is
// all-or-nothing.
type RatingPatch struct {
	RatingCompanyOverall OptionalRating       `json:"rating_company_overall"`
	RatingLocation       OptionalRating       `json:"rating_location"`
	RatingStipend        OptionalRating       `json:"rating_stipend"`
	ReachedLinkedin      *bool                `json:"reached_linkedin"`
	Remarks              *string              `json:"remarks"`
	ProjectRatings       []ProjectRatingPatch `json:"project_ratings"`
}

// Validate checks every rating in the patch against [RatingMin,
// RatingMax] and names the offending field in the returned error.
func (p *RatingPatch) Validate() error {
	if err := p.RatingCompanyOverall.validate("rating_company_overall"); err != nil {
		return err
	}
	if err := p.RatingLocation.validate("rating_location"); err != nil {
		return err
	}
	if err := p.RatingStipend.validate("rating_stipend"); err != nil {
		return err
	}
	for _, pr := range p.ProjectRatings {
		if err := pr.Rating.validate("project_ratings." + pr.Name); err != nil {
			return err
		}
	}
	return nil
}

// Apply mutates the company in place. The patch must already be
// validated. Project rating entries that do not match a known project
// are ignored.
func (p *RatingPatch) Apply(c *Company) {
	if p.RatingCompanyOverall.Set {
		c.RatingCompanyOverall = cloneRating(p.RatingCompanyOverall.Value)
	}
	if p.RatingLocation.Set {
		c.RatingLocation = cloneRating(p.RatingLocation.Value)
	}
	if p.RatingStipend.Set {
		c.RatingStipend = cloneRating(p.RatingStipend.Value)
	}
	if p.ReachedLinkedin != nil {
		c.ReachedLinkedin = *p.ReachedLinkedin
	}
	if p.Remarks != nil {
		c.Remarks = *p.Remarks
	}
	for _, pr := range p.ProjectRatings {
		if !pr.Rating.Set {
			continue
		}
		for i := range c.Projects {
			if c.Projects[i].Name == pr.Name {
				c.Projects[i].Rating = cloneRating(pr.Rating.Value)
			}
		}
	}
}
