package sqlgen

import (
	"context"
	"testing"

	"github.com/hlop3z/osql/internal/schema"
	"github.com/hlop3z/osql/internal/testutil"
	"github.com/hlop3z/osql/pkg/clause"
	"github.com/hlop3z/osql/pkg/column"
)

// -----------------------------------------------------------------------------
// Helper Tests
// -----------------------------------------------------------------------------

func TestTableOptionString(t *testing.T) {
	tests := []struct {
		opt  TableOption
		want string
	}{
		{WithoutRowID, "WITHOUT ROWID"},
		{Strict, "STRICT"},
		{TableOption(0), ""},
	}

	for _, tt := range tests {
		if got := tt.opt.String(); got != tt.want {
			t.Errorf("TableOption(%d).String() = %q, want %q", tt.opt, got, tt.want)
		}
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{-1, ""},
		{0, ""},
		{1, "?"},
		{3, "?, ?, ?"},
	}

	for _, tt := range tests {
		if got := Placeholders(tt.n); got != tt.want {
			t.Errorf("Placeholders(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestColumns(t *testing.T) {
	tests := []struct {
		name string
		cols []string
		want string
	}{
		{"empty", []string{}, ""},
		{"single", []string{"id"}, `"id"`},
		{"multiple", []string{"id", "name", "email"}, `"id", "name", "email"`},
		{"with_escape", []string{`col"name`}, `"col""name"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Columns(tt.cols...); got != tt.want {
				t.Errorf("Columns(%v) = %q, want %q", tt.cols, got, tt.want)
			}
		})
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{"empty", []string{}, ""},
		{"single", []string{"a"}, "a"},
		{"multiple", []string{"a", "b", "c"}, "a, b, c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := List(tt.items...); got != tt.want {
				t.Errorf("List(%v) = %q, want %q", tt.items, got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Builder Fluent API Tests
// -----------------------------------------------------------------------------

func TestBuilderNew(t *testing.T) {
	b := New()
	if b == nil {
		t.Fatal("New() returned nil")
	}
	if b.String() != "" {
		t.Errorf("new builder should be empty, got %q", b.String())
	}
}

func TestBuilderCreateTable(t *testing.T) {
	tests := []struct {
		name        string
		table       string
		ifNotExists bool
		want        string
	}{
		{"plain", "users", false, "CREATE TABLE users"},
		{"if_not_exists", "users", true, "CREATE TABLE IF NOT EXISTS users"},
		{"needs_quoting", "user accounts", false, `CREATE TABLE "user accounts"`},
		{"leading_digit", "1users", false, `CREATE TABLE "1users"`},
		{"keyword", "order", false, `CREATE TABLE "order"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New().CreateTable(tt.table, tt.ifNotExists).String()
			if got != tt.want {
				t.Errorf("CreateTable(%q, %v) = %q, want %q", tt.table, tt.ifNotExists, got, tt.want)
			}
		})
	}
}

func TestBuilderDropTable(t *testing.T) {
	tests := []struct {
		ifExists bool
		want     string
	}{
		{false, "DROP TABLE users"},
		{true, "DROP TABLE IF EXISTS users"},
	}

	for _, tt := range tests {
		if got := New().DropTable("users", tt.ifExists).String(); got != tt.want {
			t.Errorf("DropTable(users, %v) = %q, want %q", tt.ifExists, got, tt.want)
		}
	}
	if got := DropTableSQL("users", true); got != "DROP TABLE IF EXISTS users" {
		t.Errorf("DropTableSQL() = %q", got)
	}
}

func TestBuilderQuoteAll(t *testing.T) {
	got := New().QuoteAll().CreateTable("users", false).String()
	if got != `CREATE TABLE "users"` {
		t.Errorf("QuoteAll().CreateTable() = %q", got)
	}
}

func TestBuilderColumns(t *testing.T) {
	tests := []struct {
		name string
		defs []clause.Renderer
		want string
	}{
		{"empty", nil, " ()"},
		{"single", []clause.Renderer{column.New("a")}, " (\n  a\n)"},
		{
			"skips_blank",
			[]clause.Renderer{column.New("a"), clause.Clause{}, nil, clause.Text("b")},
			" (\n  a,\n  b\n)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New().Columns(tt.defs...).String(); got != tt.want {
				t.Errorf("Columns() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilderOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []TableOption
		want string
	}{
		{"none", nil, ""},
		{"strict", []TableOption{Strict}, " STRICT"},
		{"both", []TableOption{WithoutRowID, Strict}, " WITHOUT ROWID, STRICT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New().Options(tt.opts...).String(); got != tt.want {
				t.Errorf("Options() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilderUtilities(t *testing.T) {
	b := New().Raw("SELECT").Space().Raw("1").Semicolon().Newline()
	if got := b.String(); got != "SELECT 1;\n" {
		t.Errorf("String() = %q", got)
	}
	if got := b.Reset().String(); got != "" {
		t.Errorf("Reset() left %q", got)
	}
}

// -----------------------------------------------------------------------------
// CREATE TABLE
// -----------------------------------------------------------------------------

func usersTable() ([]column.Column, []clause.Clause) {
	cols := []column.Column{
		column.Typed("id", clause.TypeInteger(), column.PrimaryKeyAutoincrement(clause.ConflictNone)),
		column.Typed("email", clause.TypeText(), column.NotNull(clause.ConflictNone), column.Unique(clause.ConflictIgnore)),
		column.Typed("org_id", clause.TypeInteger(), column.References(clause.ForeignTable("orgs", "id"), clause.OnDelete(clause.Cascade))),
	}
	cons := []clause.Clause{column.Check("length(email) > 3")}
	return cols, cons
}

func TestCreateTableSQLGolden(t *testing.T) {
	cols, cons := usersTable()
	got := CreateTableSQL("users", true, cols, cons, Strict)
	testutil.Golden(t, "create_users", got)
}

func TestCreateTableSQLExecutes(t *testing.T) {
	db := testutil.SetupSQLite(t)

	testutil.ExecSQL(t, db, CreateTableSQL("orgs", false,
		[]column.Column{column.Typed("id", clause.TypeInteger(), column.PrimaryKey(clause.ConflictNone))}, nil))

	cols, cons := usersTable()
	testutil.ExecSQL(t, db, CreateTableSQL("users", true, cols, cons, Strict))
	testutil.AssertTableExists(t, db, "users")
	testutil.AssertColumnExists(t, db, "users", "org_id")

	testutil.ExecSQL(t, db, DropTableSQL("users", false))
	testutil.AssertTableNotExists(t, db, "users")
}

func TestCreateTableSQLFromSchemaFiles(t *testing.T) {
	files, err := schema.LoadAll(context.Background(),
		"../schema/testdata/users.yaml",
		"../schema/testdata/posts.yaml",
	)
	testutil.AssertNoError(t, err)
	tables, err := schema.Merge(files...)
	testutil.AssertNoError(t, err)

	db := testutil.SetupSQLite(t)
	for i := range tables {
		tbl := &tables[i]
		cols, err := tbl.Columns()
		testutil.AssertNoError(t, err)
		cons, err := tbl.Constraints()
		testutil.AssertNoError(t, err)

		stmt := CreateTableSQL(tbl.Name, tbl.IfNotExists, cols, cons)
		testutil.ExecSQL(t, db, stmt)
		testutil.AssertTableExists(t, db, tbl.Name)
	}

	testutil.ExecSQL(t, db, "INSERT INTO orgs (id, name) VALUES (1, 'acme')")
	testutil.ExecSQL(t, db, "INSERT INTO users (email, org_id) VALUES ('ada@example.com', 1)")
	testutil.AssertRowCount(t, db, "users", 1)

	var status string
	if err := db.QueryRow("SELECT status FROM users").Scan(&status); err != nil {
		t.Fatalf("select status: %v", err)
	}
	if status != "active" {
		t.Errorf("default status = %q, want %q", status, "active")
	}
}
