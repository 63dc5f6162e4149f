// companies.go - Durable company table: queries, ingestion snapshots, rating patches
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/interntrack/backend/internal/models"
)

// ErrNotFound is returned when an operation addresses a company name
// not present in the table.
var ErrNotFound = errors.New("company not found")

// Ingestion is the audit record of one upload.
type Ingestion struct {
	ID       string
	Imported int
	Skipped  int
}

// CompanyStore is the durable company table. All mutations run as
// short transactions on the single-writer connection, so a rating
// patch is applied atomically and readers only ever see whole patches.
type CompanyStore struct {
	db *sql.DB
}

func NewCompanyStore(d *DB) *CompanyStore {
	return &CompanyStore{db: d.Pool}
}

const companyColumns = `name, location, business_domain, tags, stipend, projects,
  rating_company_overall, rating_location, rating_stipend, reached_linkedin, remarks`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(r rowScanner) (*models.Company, error) {
	var (
		c            models.Company
		location     sql.NullString
		domain       sql.NullString
		stipend      sql.NullInt64
		tagsBlob     []byte
		projectsBlob []byte
		overall      sql.NullInt64
		locRating    sql.NullInt64
		stipRating   sql.NullInt64
	)
	err := r.Scan(&c.Name, &location, &domain, &tagsBlob, &stipend, &projectsBlob,
		&overall, &locRating, &stipRating, &c.ReachedLinkedin, &c.Remarks)
	if err != nil {
		return nil, err
	}

	if location.Valid {
		c.Location = &location.String
	}
	if domain.Valid {
		c.BusinessDomain = &domain.String
	}
	if stipend.Valid {
		v := int(stipend.Int64)
		c.Stipend = &v
	}
	c.RatingCompanyOverall = nullableInt(overall)
	c.RatingLocation = nullableInt(locRating)
	c.RatingStipend = nullableInt(stipRating)

	if c.Tags, err = decodeTags(tagsBlob); err != nil {
		return nil, err
	}
	if c.Projects, err = decodeProjects(projectsBlob); err != nil {
		return nil, err
	}
	return &c, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func ratingParam(r *int) any {
	if r == nil {
		return nil
	}
	return *r
}

// Get returns the company with the given name, or ErrNotFound.
func (s *CompanyStore) Get(ctx context.Context, name string) (*models.Company, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE name = ?;`, name)
	c, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get company %q: %w", name, err)
	}
	return c, nil
}

// ListNames returns every company name in ascending order. The order
// is the fixed stable order the client sidebar binds to.
func (s *CompanyStore) ListNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM companies ORDER BY name ASC;`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// All returns every company in name order. A single query is a
// consistent snapshot: the ranking never observes half of a patch.
func (s *CompanyStore) All(ctx context.Context) ([]*models.Company, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY name ASC;`)
	if err != nil {
		return nil, fmt.Errorf("load companies: %w", err)
	}
	defer rows.Close()

	var out []*models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ApplySnapshot commits one ingestion: base fields of every merged
// company are upserted, rating fields of existing rows are left alone,
// and project ratings carry over by name for projects present in both
// the old and new lists. Companies absent from the snapshot are
// retained untouched. Everything happens in one transaction, so a
// partially-merged state is never observable.
func (s *CompanyStore) ApplySnapshot(ctx context.Context, rec Ingestion, companies []*models.Company) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ingestion: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range companies {
		projects := c.Projects

		var existingBlob []byte
		err := tx.QueryRowContext(ctx,
			`SELECT projects FROM companies WHERE name = ?;`, c.Name).Scan(&existingBlob)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// new company
		case err != nil:
			return fmt.Errorf("ingest %q: %w", c.Name, err)
		default:
			existing, err := decodeProjects(existingBlob)
			if err != nil {
				return fmt.Errorf("ingest %q: %w", c.Name, err)
			}
			projects = carryProjectRatings(projects, existing)
		}

		tagsBlob, err := encodeTags(c.Tags)
		if err != nil {
			return fmt.Errorf("ingest %q: %w", c.Name, err)
		}
		projectsBlob, err := encodeProjects(projects)
		if err != nil {
			return fmt.Errorf("ingest %q: %w", c.Name, err)
		}

		var location, domain any
		if c.Location != nil {
			location = *c.Location
		}
		if c.BusinessDomain != nil {
			domain = *c.BusinessDomain
		}

		_, err = tx.ExecContext(ctx, `
INSERT INTO companies (name, location, business_domain, tags, stipend, projects)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
  location        = excluded.location,
  business_domain = excluded.business_domain,
  tags            = excluded.tags,
  stipend         = excluded.stipend,
  projects        = excluded.projects;`,
			c.Name, location, domain, tagsBlob, ratingParam(c.Stipend), projectsBlob)
		if err != nil {
			return fmt.Errorf("ingest %q: %w", c.Name, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO ingestions (id, imported, skipped, created_at)
VALUES (?, ?, ?, datetime('now'));`,
		rec.ID, rec.Imported, rec.Skipped)
	if err != nil {
		return fmt.Errorf("record ingestion: %w", err)
	}

	return tx.Commit()
}

// carryProjectRatings keeps a stored rating for every project name
// that survives the re-upload. Projects dropped by the new parse take
// their ratings with them.
func carryProjectRatings(fresh []models.Project, existing []models.Project) []models.Project {
	ratings := make(map[string]*int, len(existing))
	for _, p := range existing {
		if p.Rating != nil {
			r := *p.Rating
			ratings[p.Name] = &r
		}
	}
	out := make([]models.Project, len(fresh))
	for i, p := range fresh {
		out[i] = models.Project{Name: p.Name, Rating: ratings[p.Name]}
	}
	return out
}

// UpdatePatch applies a rating patch to one company. Validation runs
// first and a rejected patch changes nothing. The read-modify-write is
// a single transaction, which serializes concurrent patches to the
// same company at whole-patch granularity.
func (s *CompanyStore) UpdatePatch(ctx context.Context, name string, patch *models.RatingPatch) (*models.Company, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE name = ?;`, name)
	c, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update %q: %w", name, err)
	}

	patch.Apply(c)

	projectsBlob, err := encodeProjects(c.Projects)
	if err != nil {
		return nil, fmt.Errorf("update %q: %w", name, err)
	}

	_, err = tx.ExecContext(ctx, `
UPDATE companies SET
  projects               = ?,
  rating_company_overall = ?,
  rating_location        = ?,
  rating_stipend         = ?,
  reached_linkedin       = ?,
  remarks                = ?
WHERE name = ?;`,
		projectsBlob,
		ratingParam(c.RatingCompanyOverall),
		ratingParam(c.RatingLocation),
		ratingParam(c.RatingStipend),
		c.ReachedLinkedin,
		c.Remarks,
		name)
	if err != nil {
		return nil, fmt.Errorf("update %q: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update %q: %w", name, err)
	}
	return c, nil
}
