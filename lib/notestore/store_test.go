package notestore

import (
	"context"
	"path/filepath"
	"testing"

	"storygraph-backend/internal/components/telemetry"
	"storygraph-backend/internal/reconcile"
	"storygraph-backend/lib/testutil"

	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestStoreQuery(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testutil.OpenDB(t, testutil.DBParams{Schema: Schema}))

	note := "halfway there"
	created, err := store.Create(ctx, reconcile.Record{
		BookTitle: "Dune",
		Author:    "Frank Herbert",
		Date:      "2024-06-01",
		Progress:  floatPtr(45),
		BookId:    "abc-123",
		Status:    "other",
		Note:      &note,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.Id)

	_, err = store.Create(ctx, reconcile.Record{
		BookTitle: "Dune",
		Author:    "Frank Herbert",
		Date:      "2024-06-01",
	})
	require.NoError(t, err)

	cases := []struct {
		name     string
		filter   reconcile.Filter
		expected int
	}{
		{
			name:     "exact progress",
			filter:   reconcile.Filter{BookTitle: "Dune", Author: "Frank Herbert", Date: "2024-06-01", Progress: floatPtr(45)},
			expected: 1,
		},
		{
			name:     "null progress",
			filter:   reconcile.Filter{BookTitle: "Dune", Author: "Frank Herbert", Date: "2024-06-01"},
			expected: 1,
		},
		{
			name:     "other progress",
			filter:   reconcile.Filter{BookTitle: "Dune", Author: "Frank Herbert", Date: "2024-06-01", Progress: floatPtr(46)},
			expected: 0,
		},
		{
			name:     "other date",
			filter:   reconcile.Filter{BookTitle: "Dune", Author: "Frank Herbert", Date: "2024-06-02", Progress: floatPtr(45)},
			expected: 0,
		},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			records, err := store.Query(ctx, test.filter)
			require.NoError(t, err)
			require.Len(t, records, test.expected)
		})
	}

	records, err := store.Query(ctx, cases[0].filter)
	require.NoError(t, err)
	require.Equal(t, created, records[0])
}

func TestStoreWithReconciler(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes", "notes.db")
	store := NewStore(testutil.OpenDB(t, testutil.DBParams{Path: path}))
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx))

	reconciler := reconcile.NewReconciler(store, &telemetry.Recorder{})
	dune := reconcile.Candidate{
		BookTitle: "Dune",
		Author:    "Frank Herbert",
		Date:      "2024-06-01",
		Progress:  floatPtr(45.0),
	}

	outcome, err := reconciler.Reconcile(ctx, dune)
	require.NoError(t, err)
	require.Equal(t, reconcile.OUTCOME_CREATED, outcome)

	outcome, err = reconciler.Reconcile(ctx, dune)
	require.NoError(t, err)
	require.Equal(t, reconcile.OUTCOME_ALREADY_EXISTS, outcome)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
}
