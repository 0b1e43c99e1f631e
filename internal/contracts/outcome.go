package contracts

// SymbolOutcome is the tagged per-symbol result collected during a
// batch: either a scored candidate or a skip with its reason. The
// orchestrator reports skip counts from these without letting a
// per-symbol failure interrupt the batch.
type SymbolOutcome struct {
	Symbol    string
	Candidate *Candidate // set only when Skipped is false
	Skipped   bool
	Reason    string // set only when Skipped is true
}

// Scored wraps a successfully scored candidate
func Scored(c *Candidate) SymbolOutcome {
	return SymbolOutcome{Symbol: c.Symbol, Candidate: c}
}

// SkippedSymbol records a symbol dropped from the run
func SkippedSymbol(symbol, reason string) SymbolOutcome {
	return SymbolOutcome{Symbol: symbol, Skipped: true, Reason: reason}
}
