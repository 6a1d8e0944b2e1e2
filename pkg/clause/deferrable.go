package clause

// Initially selects the INITIALLY part of a deferrable clause.
type Initially int

const (
	InitiallyUnspecified Initially = iota
	InitiallyDeferred
	InitiallyImmediate
)

func (i Initially) keyword() Keyword {
	switch i {
	case InitiallyDeferred:
		return KeywordInitiallyDeferred
	case InitiallyImmediate:
		return KeywordInitiallyImmediate
	default:
		return KeywordNone
	}
}

// Deferrable returns "DEFERRABLE [INITIALLY DEFERRED|INITIALLY IMMEDIATE]".
func Deferrable(initially Initially) Clause {
	return Compose(KindDeferrable, KeywordDeferrable, "", initially.keyword())
}

// NotDeferrable returns "NOT DEFERRABLE [INITIALLY DEFERRED|INITIALLY IMMEDIATE]".
func NotDeferrable(initially Initially) Clause {
	return Compose(KindDeferrable, KeywordNotDeferrable, "", initially.keyword())
}

// DeferrableDeferred returns "DEFERRABLE INITIALLY DEFERRED".
func DeferrableDeferred() Clause {
	return Deferrable(InitiallyDeferred)
}

// DeferrableImmediate returns "DEFERRABLE INITIALLY IMMEDIATE".
func DeferrableImmediate() Clause {
	return Deferrable(InitiallyImmediate)
}
