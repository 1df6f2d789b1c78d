package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelect_WithConditionsOrderAndLimit(t *testing.T) {
	sql, args, err := Select("public_id", "name").
		From("teams").
		Where(Eq("event_public_id", "evt-1"), In("public_id", []any{"t-1", "t-2"})).
		OrderBy("created_at DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "SELECT public_id, name FROM teams WHERE event_public_id = $1 AND public_id IN ($2, $3) ORDER BY created_at DESC LIMIT 10"
	if sql != want {
		t.Fatalf("unexpected sql:\n got %s\nwant %s", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"evt-1", "t-1", "t-2"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_EmptyInNeverMatches(t *testing.T) {
	sql, args, err := Select("public_id").
		From("teams").
		Where(In("public_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	if sql != "SELECT public_id FROM teams WHERE 1=0" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_MissingTable(t *testing.T) {
	if _, _, err := Select("public_id").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestInsert_WithSuffix(t *testing.T) {
	sql, args, err := InsertInto("team_members").
		Columns("team_public_id", "user_id", "role").
		Values("t-1", "u-1", "owner").
		Suffix("ON CONFLICT (team_public_id, user_id) DO UPDATE SET role = EXCLUDED.role").
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "INSERT INTO team_members (team_public_id, user_id, role) VALUES ($1, $2, $3) ON CONFLICT (team_public_id, user_id) DO UPDATE SET role = EXCLUDED.role"
	if sql != want {
		t.Fatalf("unexpected sql:\n got %s\nwant %s", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"t-1", "u-1", "owner"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsert_RowArityMismatch(t *testing.T) {
	_, _, err := InsertInto("teams").
		Columns("public_id", "name").
		Values("t-1").
		ToSQL()
	if err == nil {
		t.Fatalf("expected arity error")
	}
}

func TestUpdate_MixedSetAndExpr(t *testing.T) {
	sql, args, err := Update("event_favorites").
		Set("status", "favorite").
		SetExpr("updated_at", "NOW()").
		Where(Eq("event_public_id", "evt-1"), Eq("user_id", "u-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "UPDATE event_favorites SET status = $1, updated_at = NOW() WHERE event_public_id = $2 AND user_id = $3"
	if sql != want {
		t.Fatalf("unexpected sql:\n got %s\nwant %s", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"favorite", "evt-1", "u-1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestDelete_RequiresConditions(t *testing.T) {
	if _, _, err := Delete("event_favorites").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}

	sql, args, err := Delete("event_favorites").
		Where(Eq("event_public_id", "evt-1"), Eq("user_id", "u-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	if sql != "DELETE FROM event_favorites WHERE event_public_id = $1 AND user_id = $2" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if !reflect.DeepEqual(args, []any{"evt-1", "u-1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestExpr_RewritesQuestionMarks(t *testing.T) {
	sql, args, err := Select("public_id").
		From("teams").
		Where(Expr("UPPER(invite_code) = ?", "AB12CD")).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	if sql != "SELECT public_id FROM teams WHERE UPPER(invite_code) = $1" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if !reflect.DeepEqual(args, []any{"AB12CD"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertModel_UsesDBTags(t *testing.T) {
	type row struct {
		PublicID string `db:"public_id"`
		Name     string `db:"name"`
		Ignored  string `db:"-"`
		NoTag    string
	}

	sql, args, err := InsertModel("teams", row{PublicID: "t-1", Name: "Blue"}, "")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}

	if sql != "INSERT INTO teams (public_id, name) VALUES ($1, $2)" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if !reflect.DeepEqual(args, []any{"t-1", "Blue"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}
