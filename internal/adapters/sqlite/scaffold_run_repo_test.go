package sqlite_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/crudgen/internal/adapters/sqlite"
	"github.com/example/crudgen/internal/ports/secondary"
)

func TestScaffoldRunRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewScaffoldRunRepository(db)
	ctx := context.Background()

	run := &secondary.ScaffoldRunRecord{
		EntityName: "book",
		FieldsJSON: `[{"name":"title","type":"STRING"}]`,
		FilesJSON:  `["models/book.js"]`,
	}
	require.NoError(t, repo.Create(ctx, run))

	assert.Regexp(t, regexp.MustCompile(`^RUN-[0-9A-F]{8}$`), run.ID)

	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "book", got.EntityName)
	assert.Equal(t, run.FieldsJSON, got.FieldsJSON)
	assert.Equal(t, run.FilesJSON, got.FilesJSON)
	assert.NotEmpty(t, got.CreatedAt)
}

func TestScaffoldRunRepository_CreateDefaultsJSON(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewScaffoldRunRepository(db)
	ctx := context.Background()

	run := &secondary.ScaffoldRunRecord{ID: "RUN-CAFEBABE", EntityName: "author"}
	require.NoError(t, repo.Create(ctx, run))

	got, err := repo.GetByID(ctx, "RUN-CAFEBABE")
	require.NoError(t, err)
	assert.Equal(t, "[]", got.FieldsJSON)
	assert.Equal(t, "[]", got.FilesJSON)
}

func TestScaffoldRunRepository_CreateDuplicateID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewScaffoldRunRepository(db)
	ctx := context.Background()

	seedRun(t, db, "RUN-00000001", "book", "2026-01-01 10:00:00")

	err := repo.Create(ctx, &secondary.ScaffoldRunRecord{ID: "RUN-00000001", EntityName: "book"})
	assert.Error(t, err)
}

func TestScaffoldRunRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewScaffoldRunRepository(db)

	_, err := repo.GetByID(context.Background(), "RUN-MISSING")
	assert.ErrorContains(t, err, "run RUN-MISSING not found")
}

func TestScaffoldRunRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewScaffoldRunRepository(db)
	ctx := context.Background()

	seedRun(t, db, "RUN-00000001", "book", "2026-01-01 10:00:00")
	seedRun(t, db, "RUN-00000002", "author", "2026-01-02 10:00:00")
	seedRun(t, db, "RUN-00000003", "book", "2026-01-03 10:00:00")

	tests := []struct {
		name    string
		filters secondary.ScaffoldRunFilters
		wantIDs []string
	}{
		{"all newest first", secondary.ScaffoldRunFilters{}, []string{"RUN-00000003", "RUN-00000002", "RUN-00000001"}},
		{"by entity", secondary.ScaffoldRunFilters{EntityName: "book"}, []string{"RUN-00000003", "RUN-00000001"}},
		{"limit", secondary.ScaffoldRunFilters{Limit: 1}, []string{"RUN-00000003"}},
		{"no match", secondary.ScaffoldRunFilters{EntityName: "page"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := repo.List(ctx, tt.filters)
			require.NoError(t, err)

			var ids []string
			for _, r := range runs {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestLedgerFactory_ForRoot(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()

	repo, err := sqlite.NewLedgerFactory().ForRoot(ctx, root)
	require.NoError(t, err)

	run := &secondary.ScaffoldRunRecord{EntityName: "book"}
	require.NoError(t, repo.Create(ctx, run))

	again, err := sqlite.NewLedgerFactory().ForRoot(ctx, root)
	require.NoError(t, err)
	got, err := again.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "book", got.EntityName)
	assert.FileExists(t, root+"/.crudgen/crudgen.db")
}
