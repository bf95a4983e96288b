package schema

// LogEntry is one emitted log event. In JSON mode each entry is written
// immediately to the output as one JSON object per line.
type LogEntry struct {
	Level     LogLevel       `json:"level"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"` // ISO-8601
	Data      map[string]any `json:"data,omitempty"`
}

// ToolResult is the opaque outcome of one external tool invocation.
type ToolResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}
