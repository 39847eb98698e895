// Package scanner extracts delimiter-separated columns from a single feed line.
package scanner

import (
	"bytes"
)

// Columns returns the requested zero-based columns of line, in the order they
// were requested. Scanning stops once the highest requested column has been
// reached. Values are whitespace-trimmed; a column that is missing or empty
// after trimming is returned as nil.
func Columns(line []byte, delim byte, cols ...int) [][]byte {
	out := make([][]byte, len(cols))
	if len(cols) == 0 {
		return out
	}

	last := cols[0]
	for _, c := range cols[1:] {
		if c > last {
			last = c
		}
	}

	start := 0
	for col := 0; col <= last; col++ {
		if start > len(line) {
			break
		}
		end := bytes.IndexByte(line[start:], delim)
		if end < 0 {
			end = len(line)
		} else {
			end += start
		}

		value := bytes.TrimSpace(line[start:end])
		if len(value) > 0 {
			for i, c := range cols {
				if c == col {
					out[i] = value
				}
			}
		}
		start = end + 1
	}
	return out
}

// Column returns a single trimmed column, or nil if it is missing or empty.
func Column(line []byte, delim byte, col int) []byte {
	return Columns(line, delim, col)[0]
}

// SplitList splits a list-valued column such as "1001,1002,1003" into its
// items, preserving order and duplicates. Empty items are skipped.
func SplitList(value []byte, sep byte) []string {
	if len(value) == 0 {
		return nil
	}
	items := make([]string, 0, bytes.Count(value, []byte{sep})+1)
	for len(value) > 0 {
		i := bytes.IndexByte(value, sep)
		var item []byte
		if i < 0 {
			item, value = value, nil
		} else {
			item, value = value[:i], value[i+1:]
		}
		if item = bytes.TrimSpace(item); len(item) > 0 {
			items = append(items, string(item))
		}
	}
	return items
}
