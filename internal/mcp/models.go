package mcp

import (
	"github.com/mvp-joe/abl-cortex/internal/complete"
	"github.com/mvp-joe/abl-cortex/internal/diagnose"
	"github.com/mvp-joe/abl-cortex/internal/resolve"
)

// DefinitionResponse reports a definition lookup. Line and Column are
// 1-based.
type DefinitionResponse struct {
	Found  bool   `json:"found"`
	Path   string `json:"path,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

func newDefinitionResponse(def resolve.Definition, found bool) DefinitionResponse {
	if !found {
		return DefinitionResponse{}
	}
	return DefinitionResponse{
		Found:  true,
		Path:   def.Path,
		Line:   def.Range.Start.Row + 1,
		Column: def.Range.Start.Column + 1,
	}
}

// DiagnosticResult is one finding, positioned 1-based.
type DiagnosticResult struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Source   string `json:"source"`
	Message  string `json:"message"`
}

// CheckResponse carries all findings for one file.
type CheckResponse struct {
	File        string             `json:"file"`
	Diagnostics []DiagnosticResult `json:"diagnostics"`
	Total       int                `json:"total"`
}

func newCheckResponse(file string, diags []diagnose.Diagnostic) CheckResponse {
	results := make([]DiagnosticResult, 0, len(diags))
	for _, d := range diags {
		results = append(results, DiagnosticResult{
			Line:     d.Range.Start.Row + 1,
			Column:   d.Range.Start.Column + 1,
			Severity: severityName(d.Severity),
			Source:   d.Source,
			Message:  d.Message,
		})
	}
	return CheckResponse{File: file, Diagnostics: results, Total: len(results)}
}

func severityName(severity int) string {
	if severity == diagnose.SeverityError {
		return "error"
	}
	return "info"
}

// SymbolResult is one definition symbol of a file.
type SymbolResult struct {
	Label  string `json:"label"`
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

// SymbolsResponse lists a file's definition symbols.
type SymbolsResponse struct {
	Symbols []SymbolResult `json:"symbols"`
	Total   int            `json:"total"`
}

func newSymbolsResponse(items []complete.Item) SymbolsResponse {
	symbols := make([]SymbolResult, 0, len(items))
	for _, item := range items {
		symbols = append(symbols, SymbolResult{
			Label:  item.Label,
			Kind:   item.Kind.String(),
			Detail: item.Detail,
		})
	}
	return SymbolsResponse{Symbols: symbols, Total: len(symbols)}
}
