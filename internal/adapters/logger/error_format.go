package logger

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.trai.ch/zerr"
)

// ErrorEntry is one link of an error chain: the message of that link and the
// metadata attached to it.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the error chain from the outside in. zerr errors
// contribute their own message and metadata; the first foreign error absorbs
// the rest of the chain through its Error() string.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry

	current := err
	for current != nil {
		z, ok := current.(*zerr.Error)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}

		entries = append(entries, ErrorEntry{
			Message:  z.Message(),
			Metadata: z.Metadata(),
		})
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders the entries as a main error followed by an
// indented cause chain:
//
//	Error: <first entry>
//	       <metadata>
//
//	  Caused by:
//	    → <second entry>
//	      <metadata>
func formatErrorEntries(entries []ErrorEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var lines []string

	appendEntry := func(first, cont string, entry ErrorEntry) {
		parts := strings.Split(entry.Message, "\n")
		lines = append(lines, first+parts[0])
		for _, part := range parts[1:] {
			lines = append(lines, cont+part)
		}
		for _, key := range sortedKeys(entry.Metadata) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", cont, key, entry.Metadata[key]))
		}
	}

	appendEntry("Error: ", "       ", entries[0])

	if len(entries) > 1 {
		lines = append(lines, "", "  Caused by:")
		for _, entry := range entries[1:] {
			appendEntry("    → ", "      ", entry)
		}
	}

	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
