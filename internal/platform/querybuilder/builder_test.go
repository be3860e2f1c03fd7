package querybuilder

import (
	"testing"
)

func TestSelectToSQL(t *testing.T) {
	t.Parallel()

	query, args, err := Select("1").From("fixtures").
		Where(
			Eq("match_id", "f1_2025_3_race"),
			IsNull("date_deleted"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "SELECT 1 FROM fixtures WHERE match_id = $1 AND date_deleted IS NULL LIMIT 1"
	if query != want {
		t.Fatalf("unexpected query:\ngot:  %s\nwant: %s", query, want)
	}
	if len(args) != 1 || args[0] != "f1_2025_3_race" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelectToSQL_RequiresTable(t *testing.T) {
	t.Parallel()

	if _, _, err := Select("*").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestInsertToSQL_WithSuffix(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("fixtures").
		Columns("match_id", "sport_type").
		Values("soc-2025-04-06-Ars-Che", "soccer").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "INSERT INTO fixtures (match_id, sport_type) VALUES ($1, $2) RETURNING id"
	if query != want {
		t.Fatalf("unexpected query:\ngot:  %s\nwant: %s", query, want)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertToSQL_RowArityMismatch(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("fixtures").
		Columns("match_id", "sport_type").
		Values("only-one").
		ToSQL()
	if err == nil {
		t.Fatalf("expected error for row arity mismatch")
	}
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	model := struct {
		MatchID   string `db:"match_id"`
		SportType string `db:"sport_type"`
		Ignored   string `db:"-"`
		NoTag     string
	}{MatchID: "soc-2025-04-06-Ars-Che", SportType: "soccer", Ignored: "x", NoTag: "y"}

	query, args, err := InsertModel("fixtures", model, "RETURNING id")
	if err != nil {
		t.Fatalf("InsertModel error: %v", err)
	}

	want := "INSERT INTO fixtures (match_id, sport_type) VALUES ($1, $2) RETURNING id"
	if query != want {
		t.Fatalf("unexpected query:\ngot:  %s\nwant: %s", query, want)
	}
	if len(args) != 2 || args[0] != "soc-2025-04-06-Ars-Che" || args[1] != "soccer" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertModel_NilPointer(t *testing.T) {
	t.Parallel()

	var model *struct {
		MatchID string `db:"match_id"`
	}
	if _, _, err := InsertModel("fixtures", model, ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
