package querybuilder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	lockAt := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := Select("*").
		From("prediction_entities").
		Where(Eq("status", "scheduled"), Lte("lock_at", lockAt), IsNull("deleted_at")).
		OrderBy("lock_at", "public_id").
		Limit(10).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "SELECT * FROM prediction_entities WHERE status = $1 AND lock_at <= $2 AND deleted_at IS NULL ORDER BY lock_at, public_id LIMIT 10", query)
	require.Equal(t, []any{"scheduled", lockAt}, args)
}

func TestSelectBuilder_GroupBy(t *testing.T) {
	query, args, err := Select("user_id", "category", "COALESCE(SUM(points), 0) AS points").
		From("points_records").
		Where(Eq("league_public_id", "pool-office")).
		GroupBy("user_id", "category").
		OrderBy("user_id").
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "SELECT user_id, category, COALESCE(SUM(points), 0) AS points FROM points_records WHERE league_public_id = $1 GROUP BY user_id, category ORDER BY user_id", query)
	require.Equal(t, []any{"pool-office"}, args)

	_, _, err = Select("id").ToSQL()
	require.ErrorIs(t, err, errNoTable)
	_, _, err = Select().From("bets").ToSQL()
	require.ErrorIs(t, err, errNoColumns)
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("bets").
		Columns("public_id", "user_id").
		Values("b1", "u1").
		Values("b2", "u2").
		Suffix("  ON CONFLICT DO NOTHING ").
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO bets (public_id, user_id) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING", query)
	require.Equal(t, []any{"b1", "u1", "b2", "u2"}, args)

	_, _, err = InsertInto("bets").Columns("public_id", "user_id").Values("b1").ToSQL()
	require.ErrorContains(t, err, "row 0 has 1 values")
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("prediction_entities").
		Set("status", "evaluated").
		Set("updated_at", "now").
		Where(Eq("public_id", "m1")).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "UPDATE prediction_entities SET status = $1, updated_at = $2 WHERE public_id = $3", query)
	require.Equal(t, []any{"evaluated", "now", "m1"}, args)

	_, _, err = Update("prediction_entities").ToSQL()
	require.Error(t, err)
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("points_records").
		Where(Eq("entity_public_id", "m1")).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "DELETE FROM points_records WHERE entity_public_id = $1", query)
	require.Equal(t, []any{"m1"}, args)

	_, _, err = DeleteFrom("points_records").ToSQL()
	require.Error(t, err, "unconditional delete must be rejected")
}

func TestInsertModels(t *testing.T) {
	type row struct {
		BetID    string `db:"bet_public_id"`
		Points   int    `db:"points,omitempty"`
		Skip     string `db:"-"`
		internal string `db:"internal"`
	}

	query, args, err := InsertModels("points_records", []row{{BetID: "b1", Points: 5}, {BetID: "b2"}},
		"ON CONFLICT (bet_public_id) DO UPDATE SET points = EXCLUDED.points")
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO points_records (bet_public_id, points) VALUES ($1, $2), ($3, $4) ON CONFLICT (bet_public_id) DO UPDATE SET points = EXCLUDED.points", query)
	require.Equal(t, []any{"b1", 5, "b2", 0}, args)

	query, args, err = InsertModel("points_records", &row{BetID: "b3", Points: 1}, "")
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO points_records (bet_public_id, points) VALUES ($1, $2)", query)
	require.Equal(t, []any{"b3", 1}, args)

	_, _, err = InsertModel("points_records", (*row)(nil), "")
	require.ErrorContains(t, err, "nil")
	_, _, err = InsertModels[row]("points_records", nil, "")
	require.Error(t, err)
}
