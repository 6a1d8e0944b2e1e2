package dbconn

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/hlop3z/osql/internal/alerr"
	"github.com/hlop3z/osql/internal/testutil"
)

func TestPrepareStepFinalize(t *testing.T) {
	ctx := context.Background()
	c := openMemory(t)

	_, err := c.Exec(ctx, "CREATE TABLE t (id INTEGER PRIMARY KEY, name TEXT NOT NULL)")
	require.NoError(t, err)

	st, err := c.Prepare(ctx, "INSERT INTO t (name) VALUES (?)")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO t (name) VALUES (?)", st.SQL())

	for _, name := range []string{"a", "b", "c"} {
		rc, err := st.Step(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, sqlite3.SQLITE_DONE, rc)
		assert.Equal(t, sqlite3.SQLITE_OK, st.ErrCode())
	}

	require.NoError(t, st.Finalize())
	assert.True(t, st.Finalized())
	assert.NoError(t, st.Finalize(), "finalize is idempotent")

	testutil.AssertRowCount(t, c, "t", 3)
}

func TestStepConstraintFailure(t *testing.T) {
	ctx := context.Background()
	c := openMemory(t)

	_, err := c.Exec(ctx, "CREATE TABLE t (id INTEGER PRIMARY KEY, name TEXT NOT NULL)")
	require.NoError(t, err)

	st, err := c.Prepare(ctx, "INSERT INTO t (name) VALUES (?)")
	require.NoError(t, err)
	defer st.Finalize()

	rc, err := st.Step(ctx, nil)
	require.Error(t, err)
	testutil.AssertError(t, err, alerr.ErrStep)
	assert.Equal(t, sqlite3.SQLITE_CONSTRAINT, rc&0xff)
	assert.Equal(t, rc, st.ErrCode())
	assert.Equal(t, rc, c.ErrCode())
}

func TestPrepareSyntaxError(t *testing.T) {
	c := openMemory(t)

	st, err := c.Prepare(context.Background(), "SELEC 1")
	require.Error(t, err)
	assert.Nil(t, st)
	testutil.AssertError(t, err, alerr.ErrPrepare)
	assert.Equal(t, sqlite3.SQLITE_ERROR, PrimaryCode(err))
	assert.Contains(t, c.ErrMsg(), "syntax error")

	var ae *alerr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "SELEC 1", ae.GetContext()["sql"])
}

func TestStmtQuery(t *testing.T) {
	ctx := context.Background()
	c := openMemory(t)

	st, err := c.Prepare(ctx, "SELECT ? + 1")
	require.NoError(t, err)
	defer st.Finalize()

	rows, err := st.Query(ctx, 41)
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var got int
	require.NoError(t, rows.Scan(&got))
	assert.Equal(t, 42, got)
}

func TestStepAfterFinalize(t *testing.T) {
	ctx := context.Background()
	c := openMemory(t)

	st, err := c.Prepare(ctx, "SELECT 1")
	require.NoError(t, err)
	require.NoError(t, st.Finalize())

	rc, err := st.Step(ctx)
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, sqlite3.SQLITE_MISUSE, rc)
	assert.Equal(t, rc, Code(err))
	assert.Equal(t, rc, st.ErrCode())
	assert.Equal(t, rc, c.ErrCode())

	_, err = st.Query(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}
