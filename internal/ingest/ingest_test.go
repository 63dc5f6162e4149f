package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/interntrack/backend/internal/archive"
	"github.com/interntrack/backend/internal/parser"
	"github.com/interntrack/backend/internal/store"
)

const companyCSV = `COMPANY,PROJECT,LOCATION,Business Domain,Tags
Acme,"Infra,Search",Pune,Software,"ml,backend"
,Orphan,,,
`

const stipendCSV = `COMPANY,STIPEND
Acme,20000
Initech,12000
Hooli,unknown
`

func newTestIngestor(t *testing.T) (*Ingestor, *store.CompanyStore) {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))

	companies := store.NewCompanyStore(db)
	return NewIngestor(companies), companies
}

func TestIngestorRun(t *testing.T) {
	ing, companies := newTestIngestor(t)

	result, err := ing.Run(context.Background(),
		File{Name: "companies.csv", Reader: strings.NewReader(companyCSV)},
		File{Name: "stipend.csv", Reader: strings.NewReader(stipendCSV)},
	)
	require.NoError(t, err)
	require.Equal(t, 2, result.Imported)
	require.Len(t, result.CompanySkips, 1)
	require.Len(t, result.StipendSkips, 1)
	require.Equal(t, "Imported 2 companies. Skipped 2 rows.", result.Summary())

	names, err := companies.ListNames(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Acme", "Initech"}, names)
}

func TestIngestorRunWithCancelableParent(t *testing.T) {
	ing, companies := newTestIngestor(t)

	// the commit must run on the caller's context, not one the parse
	// phase has already torn down
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result, err := ing.Run(ctx,
		File{Name: "companies.csv", Reader: strings.NewReader(companyCSV)},
		File{Name: "stipend.csv", Reader: strings.NewReader(stipendCSV)},
	)
	require.NoError(t, err)
	require.Equal(t, 2, result.Imported)

	got, err := companies.Get(ctx, "Acme")
	require.NoError(t, err)
	require.Equal(t, 20000, *got.Stipend)
}

func TestIngestorRunMalformedFileCommitsNothing(t *testing.T) {
	ing, companies := newTestIngestor(t)

	_, err := ing.Run(context.Background(),
		File{Name: "companies.csv", Reader: strings.NewReader("COMPANY,LOCATION\nAcme,Pune\n")},
		File{Name: "stipend.csv", Reader: strings.NewReader(stipendCSV)},
	)
	var malformed *parser.MalformedInputError
	require.ErrorAs(t, err, &malformed)

	names, err := companies.ListNames(context.Background())
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestIngestorArchivesUploads(t *testing.T) {
	ing, _ := newTestIngestor(t)

	dir := t.TempDir()
	a, err := archive.New(dir)
	require.NoError(t, err)
	ing.WithArchive(a)

	result, err := ing.Run(context.Background(),
		File{Name: "companies.csv", Reader: strings.NewReader(companyCSV)},
		File{Name: "stipend.csv", Reader: strings.NewReader(stipendCSV)},
	)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.True(t, strings.HasPrefix(e.Name(), result.IngestionID))
	}
}
