package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/csimoes1/tldr-code/index"
	"github.com/csimoes1/tldr-code/summary"
)

// FormatSignatureResults formats signature search results as human-readable
// text, one signature per line with its file location.
func FormatSignatureResults(results []index.SignatureEntry, total int) string {
	if len(results) == 0 {
		return "No signatures matched."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Found %d signatures (showing %d):\n\n", total, len(results)))

	for _, entry := range results {
		sig := entry.Signature
		name := sig.Name
		if sig.Scope != "" {
			name = sig.Scope + "." + name
		}
		builder.WriteString(fmt.Sprintf("  %s:%d  [%s/%s]  %s%s\n",
			entry.Path, sig.Line, entry.Language, sig.Kind, name, renderCall(sig)))
	}

	return builder.String()
}

// renderCall renders the parameter list and return type without the name,
// so scope-qualified names read naturally.
func renderCall(sig summary.Signature) string {
	text := sig.String()
	if idx := strings.IndexByte(text, '('); idx >= 0 {
		return text[idx:]
	}
	return ""
}

// formatFileSize converts bytes to a human-readable string.
func formatFileSize(bytes int64) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	case bytes >= 1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	if totalSeconds < 60 {
		return fmt.Sprintf("%ds", totalSeconds)
	}
	totalMinutes := totalSeconds / 60
	remainderSeconds := totalSeconds % 60
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm%ds", totalMinutes, remainderSeconds)
	}
	hours := totalMinutes / 60
	remainderMinutes := totalMinutes % 60
	return fmt.Sprintf("%dh%dm", hours, remainderMinutes)
}
