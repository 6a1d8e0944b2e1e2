package clause

import "strconv"

// TypeName returns a column type such as "INTEGER", "CHAR(10)" or "DECIMAL(20,10)".
// Numeric arguments render comma-joined inside parentheses in the order given.
// SQLite accepts zero, one or two of them.
func TypeName(name string, args ...int) Clause {
	items := make([]string, len(args))
	for i, a := range args {
		items[i] = strconv.Itoa(a)
	}
	return Compose(KindTypeName, KeywordNone, name+parenthesized(",", items), KeywordNone)
}

func TypeInteger() Clause  { return TypeName(string(KeywordInteger)) }
func TypeText() Clause     { return TypeName(string(KeywordText)) }
func TypeReal() Clause     { return TypeName(string(KeywordReal)) }
func TypeBlob() Clause     { return TypeName(string(KeywordBlob)) }
func TypeNumeric() Clause  { return TypeName(string(KeywordNumeric)) }
func TypeBoolean() Clause  { return TypeName(string(KeywordBoolean)) }
func TypeDate() Clause     { return TypeName(string(KeywordDate)) }
func TypeDatetime() Clause { return TypeName(string(KeywordDatetime)) }

// TypeChar returns "CHAR(length)".
func TypeChar(length int) Clause {
	return TypeName(string(KeywordChar), length)
}

// TypeVarchar returns "VARCHAR(length)".
func TypeVarchar(length int) Clause {
	return TypeName(string(KeywordVarchar), length)
}

// TypeDecimal returns "DECIMAL(precision,scale)".
func TypeDecimal(precision, scale int) Clause {
	return TypeName(string(KeywordDecimal), precision, scale)
}
