package dbconn

import (
	"context"
	"sort"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/hlop3z/osql/internal/alerr"
	"github.com/hlop3z/osql/internal/strutil"
)

// LimitID names one of the engine's run-time limit categories.
type LimitID int

const (
	LimitLength            LimitID = sqlite3.SQLITE_LIMIT_LENGTH
	LimitSQLLength         LimitID = sqlite3.SQLITE_LIMIT_SQL_LENGTH
	LimitColumn            LimitID = sqlite3.SQLITE_LIMIT_COLUMN
	LimitExprDepth         LimitID = sqlite3.SQLITE_LIMIT_EXPR_DEPTH
	LimitCompoundSelect    LimitID = sqlite3.SQLITE_LIMIT_COMPOUND_SELECT
	LimitVDBEOp            LimitID = sqlite3.SQLITE_LIMIT_VDBE_OP
	LimitFunctionArg       LimitID = sqlite3.SQLITE_LIMIT_FUNCTION_ARG
	LimitAttached          LimitID = sqlite3.SQLITE_LIMIT_ATTACHED
	LimitLikePatternLength LimitID = sqlite3.SQLITE_LIMIT_LIKE_PATTERN_LENGTH
	LimitVariableNumber    LimitID = sqlite3.SQLITE_LIMIT_VARIABLE_NUMBER
	LimitTriggerDepth      LimitID = sqlite3.SQLITE_LIMIT_TRIGGER_DEPTH
	LimitWorkerThreads     LimitID = sqlite3.SQLITE_LIMIT_WORKER_THREADS
)

// AllLimits lists every limit category in engine order.
var AllLimits = []LimitID{
	LimitLength,
	LimitSQLLength,
	LimitColumn,
	LimitExprDepth,
	LimitCompoundSelect,
	LimitVDBEOp,
	LimitFunctionArg,
	LimitAttached,
	LimitLikePatternLength,
	LimitVariableNumber,
	LimitTriggerDepth,
	LimitWorkerThreads,
}

var limitNames = map[LimitID]string{
	LimitLength:            "length",
	LimitSQLLength:         "sql_length",
	LimitColumn:            "column",
	LimitExprDepth:         "expr_depth",
	LimitCompoundSelect:    "compound_select",
	LimitVDBEOp:            "vdbe_op",
	LimitFunctionArg:       "function_arg",
	LimitAttached:          "attached",
	LimitLikePatternLength: "like_pattern_length",
	LimitVariableNumber:    "variable_number",
	LimitTriggerDepth:      "trigger_depth",
	LimitWorkerThreads:     "worker_threads",
}

// String returns the snake_case name of the limit, e.g. "sql_length".
func (id LimitID) String() string {
	if s, ok := limitNames[id]; ok {
		return s
	}
	return "unknown"
}

// Valid reports whether id is a known limit category.
func (id LimitID) Valid() bool {
	_, ok := limitNames[id]
	return ok
}

// LimitNames returns the names of all limit categories in engine order.
func LimitNames() []string {
	names := make([]string, len(AllLimits))
	for i, id := range AllLimits {
		names[i] = id.String()
	}
	return names
}

// ParseLimit maps a limit name to its LimitID. It accepts snake_case,
// camelCase, dashed and SQLITE_LIMIT_ prefixed spellings.
func ParseLimit(name string) (LimitID, error) {
	norm := strings.TrimSpace(name)
	if !strings.ContainsAny(norm, "abcdefghijklmnopqrstuvwxyz") {
		norm = strings.ToLower(norm)
	}
	norm = strings.TrimPrefix(strutil.ToSnakeCase(norm), "sqlite_limit_")
	for id, n := range limitNames {
		if n == norm {
			return id, nil
		}
	}
	return -1, alerr.NewUnknownNameError(alerr.ErrInvalidLimit, "limit", name, LimitNames())
}

// Limit returns the current value of a limit.
func (c *Conn) Limit(ctx context.Context, id LimitID) (int, error) {
	return c.limit(ctx, id, -1)
}

// SetLimit changes a limit and returns its previous value. The engine silently
// clamps values above its compile-time maximum; read the limit back to see the
// value in effect.
func (c *Conn) SetLimit(ctx context.Context, id LimitID, value int) (int, error) {
	if value < 0 {
		return 0, alerr.Newf(alerr.ErrInvalidLimit, "limit %s must not be negative", id).With("value", value)
	}
	prev, err := c.limit(ctx, id, value)
	if err != nil {
		return 0, err
	}
	c.logger.Debug("limit changed", "limit", id.String(), "from", prev, "to", value)
	return prev, nil
}

// Limits returns the current value of every limit category.
func (c *Conn) Limits(ctx context.Context) (map[LimitID]int, error) {
	out := make(map[LimitID]int, len(AllLimits))
	for _, id := range AllLimits {
		v, err := c.Limit(ctx, id)
		if err != nil {
			return nil, err
		}
		out[id] = v
	}
	return out, nil
}

// SortedLimitIDs returns the keys of m in engine order.
func SortedLimitIDs(m map[LimitID]int) []LimitID {
	ids := make([]LimitID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (c *Conn) limit(ctx context.Context, id LimitID, value int) (int, error) {
	if err := c.usable(ctx); err != nil {
		return 0, err
	}
	if !id.Valid() {
		return 0, alerr.Newf(alerr.ErrInvalidLimit, "unknown limit id %d", int(id))
	}
	v, err := sqlite.Limit(c.conn, int(id), value)
	if err != nil {
		c.lastErr = err
		return 0, alerr.Wrapf(alerr.ErrLimit, err, "failed to access limit %s", id)
	}
	c.lastErr = nil
	return v, nil
}
