// Package ident contains the pure logic for task identifier allocation.
// Identifiers have the form "{PREFIX}-{TYPE}-{NNN}" where NNN is a numeric
// suffix unique per (project, type) pair.
package ident

import (
	"fmt"
	"strconv"
	"strings"
)

// NextSuffix returns the next unused numeric suffix given the task IDs that
// already exist for a (project, type) pair. The scheme is MAX-based rather
// than COUNT-based: it stays correct after rows have been deleted (gaps are
// never refilled) and supports suffixes of any digit width.
//
// Entries whose trailing segment is not an unsigned integer are ignored.
func NextSuffix(existing []string) int {
	max := 0
	for _, id := range existing {
		idx := strings.LastIndex(id, "-")
		if idx < 0 || idx == len(id)-1 {
			continue
		}
		n, err := strconv.Atoi(id[idx+1:])
		if err != nil || n < 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}

// FormatTaskID builds the external task identifier for a project prefix,
// task type, and numeric suffix. The suffix is zero-padded to at least
// three digits and unbounded above 999.
func FormatTaskID(prefix, taskType string, n int) string {
	return fmt.Sprintf("%s-%s-%03d", strings.ToUpper(prefix), strings.ToUpper(taskType), n)
}
