package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
	SymbolInfo    = "→"
)
