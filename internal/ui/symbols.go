package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Operation succeeded
	SymbolFail     = "✗" // Operation failed
	SymbolComplete = "●" // Idle marker
	SymbolWarning  = "⚠" // Something needs attention
)
