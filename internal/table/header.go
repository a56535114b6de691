package table

import (
	"fmt"
	"strings"
)

// uniqueColumns names empty headers "Unnamed: <i>" and suffixes repeated
// headers with ".1", ".2", ... so every column name is unique.
func uniqueColumns(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		if _, dup := seen[name]; dup {
			for n := seen[h] + 1; ; n++ {
				candidate := fmt.Sprintf("%s.%d", h, n)
				if _, taken := seen[candidate]; !taken {
					seen[h] = n
					name = candidate
					break
				}
			}
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}
