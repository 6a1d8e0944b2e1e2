package column

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlop3z/osql/pkg/clause"
)

func TestColumnRender(t *testing.T) {
	tests := []struct {
		name   string
		column Column
		want   string
	}{
		{"bare", New("columnName1"), "columnName1"},
		{"typed integer", Typed("columnName2", clause.TypeInteger()), "columnName2 INTEGER"},
		{"typed char", Typed("columnName3", clause.TypeName("CHAR", 10)), "columnName3 CHAR(10)"},
		{"typed decimal", Typed("columnName4", clause.TypeDecimal(20, 10)), "columnName4 DECIMAL(20,10)"},
		{
			"typed with constraint",
			Typed("columnName5", clause.TypeChar(10), NotNull(clause.ConflictFail)),
			"columnName5 CHAR(10) NOT NULL ON CONFLICT FAIL",
		},
		{
			"untyped with constraints",
			New("columnName6", NotNull(clause.ConflictFail), Unique(clause.ConflictAbort), Default("<unset>")),
			"columnName6 NOT NULL ON CONFLICT FAIL UNIQUE ON CONFLICT ABORT DEFAULT <unset>",
		},
		{
			"varchar with constraints",
			Typed("columnName7", clause.TypeVarchar(15), NotNull(clause.ConflictFail), Unique(clause.ConflictAbort), Default("<unset>")),
			"columnName7 VARCHAR(15) NOT NULL ON CONFLICT FAIL UNIQUE ON CONFLICT ABORT DEFAULT <unset>",
		},
		{
			"empty type and constraints skipped",
			Typed("c", clause.Clause{}, clause.Clause{}, NotNull(clause.ConflictNone)),
			"c NOT NULL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.column.Render()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, tt.column.String())
			assert.NotContains(t, got, "  ")
		})
	}
}

func TestColumnConstraintOrder(t *testing.T) {
	col := New("x", Default("1"), NotNull(clause.ConflictNone), Check("x > 0"))
	got := col.Render()

	idxDefault := strings.Index(got, "DEFAULT")
	idxNotNull := strings.Index(got, "NOT NULL")
	idxCheck := strings.Index(got, "CHECK")
	require.True(t, idxDefault >= 0 && idxNotNull >= 0 && idxCheck >= 0, got)
	assert.Less(t, idxDefault, idxNotNull)
	assert.Less(t, idxNotNull, idxCheck)
}

func TestColumnCopiesConstraints(t *testing.T) {
	cs := []clause.Clause{NotNull(clause.ConflictNone)}
	col := New("a", cs...)
	cs[0] = Unique(clause.ConflictNone)
	assert.Equal(t, "a NOT NULL", col.Render())

	got := col.Constraints()
	got[0] = Default("0")
	assert.Equal(t, "a NOT NULL", col.Render())

	wider := col.With(Default("0"))
	assert.Equal(t, "a NOT NULL", col.Render())
	assert.Equal(t, "a NOT NULL DEFAULT 0", wider.Render())
}

func TestColumnAccessors(t *testing.T) {
	col := Typed("id", clause.TypeInteger(), PrimaryKey(clause.ConflictNone))
	assert.Equal(t, "id", col.Name())

	typ, ok := col.Type()
	require.True(t, ok)
	assert.Equal(t, "INTEGER", typ.Render())
	assert.Len(t, col.Constraints(), 1)

	_, ok = New("x").Type()
	assert.False(t, ok)
}

func TestConstraints(t *testing.T) {
	tests := []struct {
		name   string
		clause clause.Clause
		want   string
	}{
		// Primary key
		{"pk", PrimaryKey(clause.ConflictNone), "PRIMARY KEY"},
		{"pk rollback", PrimaryKey(clause.ConflictRollback), "PRIMARY KEY ON CONFLICT ROLLBACK"},
		{"pk desc", PrimaryKeyDesc(clause.ConflictNone), "PRIMARY KEY DESC"},
		{"pk asc", PrimaryKeyAsc(clause.ConflictIgnore), "PRIMARY KEY ASC ON CONFLICT IGNORE"},
		{"pk autoincrement", PrimaryKeyAutoincrement(clause.ConflictNone), "PRIMARY KEY AUTOINCREMENT"},
		{"pk asc autoincrement abort", PrimaryKeyAscAutoincrement(clause.ConflictAbort), "PRIMARY KEY ASC ON CONFLICT ABORT AUTOINCREMENT"},
		{"pk desc autoincrement", PrimaryKeyDescAutoincrement(clause.ConflictReplace), "PRIMARY KEY DESC ON CONFLICT REPLACE AUTOINCREMENT"},
		{"pk general", PrimaryKeyOf(clause.Asc, clause.ConflictNone, true), "PRIMARY KEY ASC AUTOINCREMENT"},

		// NOT NULL / UNIQUE
		{"not null", NotNull(clause.ConflictNone), "NOT NULL"},
		{"not null fail", NotNull(clause.ConflictFail), "NOT NULL ON CONFLICT FAIL"},
		{"unique", Unique(clause.ConflictNone), "UNIQUE"},
		{"unique abort", Unique(clause.ConflictAbort), "UNIQUE ON CONFLICT ABORT"},

		// Values
		{"default", Default("0"), "DEFAULT 0"},
		{"default literal", Default("'x'"), "DEFAULT 'x'"},
		{"check", Check("length(a) > 3"), "CHECK (length(a) > 3)"},
		{"check empty", Check(""), "CHECK"},
		{"generated", GeneratedAs("a * 2", StorageDefault), "GENERATED ALWAYS AS (a * 2)"},
		{"generated stored", GeneratedAs("a * 2", Stored), "GENERATED ALWAYS AS (a * 2) STORED"},
		{"as virtual", As("a || b", Virtual), "AS (a || b) VIRTUAL"},
		{"collate", Collate("NOCASE"), "COLLATE NOCASE"},

		// Naming and references
		{"named", Named("pk_users", PrimaryKey(clause.ConflictNone)), "CONSTRAINT pk_users PRIMARY KEY"},
		{"references", References(clause.ForeignTable("orgs", "id")), "REFERENCES orgs(id)"},
		{
			"references with actions",
			References(clause.ForeignTable("orgs", "id"), clause.OnDelete(clause.Cascade), clause.DeferrableDeferred()),
			"REFERENCES orgs(id) ON DELETE CASCADE DEFERRABLE INITIALLY DEFERRED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.clause.Render())
		})
	}
}

func TestConstraintKinds(t *testing.T) {
	assert.Equal(t, clause.KindPrimaryKey, PrimaryKey(clause.ConflictNone).Kind())
	assert.Equal(t, clause.KindNotNull, NotNull(clause.ConflictNone).Kind())
	assert.Equal(t, clause.KindUnique, Unique(clause.ConflictNone).Kind())
	assert.Equal(t, clause.KindDefault, Default("1").Kind())
	assert.Equal(t, clause.KindCheck, Check("1").Kind())
	assert.Equal(t, clause.KindGeneratedAs, As("1", Stored).Kind())
	assert.Equal(t, clause.KindNamedConstraint, Named("n", Unique(clause.ConflictNone)).Kind())
	assert.Equal(t, clause.KindReferences, References(clause.ForeignTable("t")).Kind())
}

func TestConflictLivesInSuffix(t *testing.T) {
	tests := []struct {
		name   string
		clause clause.Clause
		prefix string
		suffix string
		reset  string
	}{
		{"not null", NotNull(clause.ConflictFail), "NOT NULL", "ON CONFLICT FAIL", "NOT NULL ON CONFLICT FAIL"},
		{"unique", Unique(clause.ConflictAbort), "UNIQUE", "ON CONFLICT ABORT", "UNIQUE ON CONFLICT ABORT"},
		{"pk autoincrement", PrimaryKeyDescAutoincrement(clause.ConflictReplace), "PRIMARY KEY DESC", "ON CONFLICT REPLACE AUTOINCREMENT", "PRIMARY KEY DESC ON CONFLICT REPLACE AUTOINCREMENT"},
		{"pk no conflict", PrimaryKeyAutoincrement(clause.ConflictNone), "PRIMARY KEY", "AUTOINCREMENT", "PRIMARY KEY AUTOINCREMENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.clause
			assert.Equal(t, tt.prefix, c.Prefix())
			assert.Empty(t, c.Core())
			assert.Equal(t, tt.suffix, c.Suffix())

			c.SetText("")
			assert.Equal(t, tt.reset, c.Render())
		})
	}
}
