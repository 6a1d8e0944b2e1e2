package clause

// With returns "WITH cte".
func With(cte string) Clause {
	return Compose(KindWith, KeywordWith, cte, KeywordNone)
}

// WithRecursive returns "WITH RECURSIVE cte".
func WithRecursive(cte string) Clause {
	return Compose(KindWith, KeywordWithRecursive, cte, KeywordNone)
}

// Select returns "SELECT expr".
func Select(expr string) Clause {
	return Compose(KindSelect, KeywordSelect, expr, KeywordNone)
}

// SelectDistinct returns "SELECT DISTINCT expr"; the expression may be empty.
func SelectDistinct(expr string) Clause {
	return Compose(KindSelect, KeywordSelectDistinct, expr, KeywordNone)
}

// SelectAll returns "SELECT ALL expr".
func SelectAll(expr string) Clause {
	return Compose(KindSelect, KeywordSelectAll, expr, KeywordNone)
}
