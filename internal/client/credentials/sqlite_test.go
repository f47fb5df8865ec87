package credentials

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:credrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS credentials (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM credentials`)
	require.NoError(t, err)
	return db
}

func TestGet_AbsentWhenEmpty(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	pair, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.Nil(t, pair)
}

func TestSetGet_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	require.NoError(t, repo.Set(ctx, Pair{AccessToken: "A1", RefreshToken: "R1"}))

	pair, err := repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, pair)
	require.Equal(t, "A1", pair.AccessToken)
	require.Equal(t, "R1", pair.RefreshToken)
}

func TestSet_ReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	require.NoError(t, repo.Set(ctx, Pair{AccessToken: "A1", RefreshToken: "R1"}))
	require.NoError(t, repo.Set(ctx, Pair{AccessToken: "A2", RefreshToken: "R2"}))

	pair, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "A2", pair.AccessToken)
	require.Equal(t, "R2", pair.RefreshToken)
}

func TestGet_PartialPairReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	_, err := db.Exec(`INSERT INTO credentials (key, value) VALUES ('access_token', 'A1')`)
	require.NoError(t, err)

	pair, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Nil(t, pair)
}

func TestGet_EmptyValueReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	_, err := db.Exec(`INSERT INTO credentials (key, value) VALUES ('access_token', 'A1'), ('refresh_token', '')`)
	require.NoError(t, err)

	pair, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Nil(t, pair)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	require.NoError(t, repo.Set(ctx, Pair{AccessToken: "A1", RefreshToken: "R1"}))
	require.NoError(t, repo.Clear(ctx))

	pair, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Nil(t, pair)
}
