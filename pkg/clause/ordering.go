package clause

// Direction is the sort direction of an ordering term.
type Direction int

const (
	Unordered Direction = iota
	Asc
	Desc
)

// Keyword returns ASC, DESC or nothing.
func (d Direction) Keyword() Keyword {
	switch d {
	case Asc:
		return KeywordAsc
	case Desc:
		return KeywordDesc
	default:
		return KeywordNone
	}
}

// NullsOrder places NULLs first or last in an ordering term.
type NullsOrder int

const (
	NullsUnspecified NullsOrder = iota
	NullsFirst
	NullsLast
)

func (n NullsOrder) keyword() Keyword {
	switch n {
	case NullsFirst:
		return KeywordNullsFirst
	case NullsLast:
		return KeywordNullsLast
	default:
		return KeywordNone
	}
}

// Collate returns "COLLATE name".
func Collate(name string) Clause {
	return Compose(KindCollate, KeywordCollate, name, KeywordNone)
}

// OrderingTerm returns "expr [COLLATE name] [ASC|DESC] [NULLS FIRST|NULLS LAST]".
// Pass the zero Clause as collate to omit the collation.
func OrderingTerm(expr string, collate Clause, dir Direction, nulls NullsOrder) Clause {
	return Compose(KindOrderingTerm,
		KeywordNone,
		joinClauses(" ", []Clause{Text(expr), collate}),
		dir.Keyword().Join(nulls.keyword()),
	)
}

// Term returns an ordering term without direction or collation.
func Term(expr string) Clause {
	return OrderingTerm(expr, Clause{}, Unordered, NullsUnspecified)
}

// AscTerm returns "expr ASC".
func AscTerm(expr string) Clause {
	return OrderingTerm(expr, Clause{}, Asc, NullsUnspecified)
}

// DescTerm returns "expr DESC".
func DescTerm(expr string) Clause {
	return OrderingTerm(expr, Clause{}, Desc, NullsUnspecified)
}

// NullsFirstTerm returns "expr NULLS FIRST".
func NullsFirstTerm(expr string) Clause {
	return OrderingTerm(expr, Clause{}, Unordered, NullsFirst)
}

// NullsLastTerm returns "expr NULLS LAST".
func NullsLastTerm(expr string) Clause {
	return OrderingTerm(expr, Clause{}, Unordered, NullsLast)
}

// OrderBy returns "ORDER BY t1, t2, ..." keeping the terms in the order given.
func OrderBy(terms ...Clause) Clause {
	return Compose(KindOrderBy, KeywordOrderBy, joinClauses(", ", terms), KeywordNone)
}
