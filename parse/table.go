// Package parse turns raw device terminal output into typed records. Every
// parser is a pure function; transport concerns never leak in here.
package parse

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// delimiterRe matches the line of dashes separating a table header
	// from its data rows.
	delimiterRe = regexp.MustCompile(`(?m)^----.*`)
	// summaryRe matches the trailing "Total ..." summary block some
	// tables append after a blank line.
	summaryRe = regexp.MustCompile(`\n\nTotal.*`)
)

// RequiredFieldError reports that a structurally required field did not match
// in the device output. It is fatal for the retrieval call, unlike optional
// fields which default silently.
type RequiredFieldError struct {
	Field string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("required field %q not found in device output", e.Field)
}

// tableBody strips the header above the first dash-delimiter line and any
// trailing summary section, returning only the data rows.
func tableBody(raw string) (string, error) {
	parts := delimiterRe.Split(raw, 2)
	if len(parts) < 2 {
		return "", &RequiredFieldError{Field: "table delimiter"}
	}
	body := parts[1]
	if loc := summaryRe.FindStringIndex(body); loc != nil {
		body = body[:loc[0]]
	}
	return body, nil
}

// dataRows splits a table body into individual non-blank lines.
func dataRows(body string) []string {
	var rows []string
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, line)
	}
	return rows
}

// column slices a fixed-column line by character offsets, tolerating lines
// shorter than the column boundaries.
func column(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end < 0 || end > len(line) {
		end = len(line)
	}
	return line[start:end]
}

// optional returns the first submatch of re or the empty string, making the
// optional/required distinction per field explicit at the call site.
func optional(re *regexp.Regexp, raw string) string {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// required returns the first submatch of re or a RequiredFieldError named
// after the field.
func required(re *regexp.Regexp, raw, field string) (string, error) {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return "", &RequiredFieldError{Field: field}
	}
	return strings.TrimSpace(m[1]), nil
}
