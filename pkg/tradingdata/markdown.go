package tradingdata

import (
	"fmt"
	"sort"
	"strings"
)

// RenderMarkdown flattens an analyze response into a markdown section
// suitable for prompt interpolation. Object keys become headings of
// increasing depth, arrays become bullet lists. Keys are sorted so the
// rendering is deterministic.
func RenderMarkdown(data map[string]any) string {
	lines := []string{"## TRADING DATA"}
	lines = renderValue(lines, data, 3)
	return strings.Join(lines, "\n\n")
}

func renderValue(lines []string, v any, level int) []string {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = append(lines, strings.Repeat("#", level)+" "+k)
			lines = renderValue(lines, val[k], level+1)
		}
	case []any:
		for _, item := range val {
			switch item.(type) {
			case map[string]any, []any:
				lines = renderValue(lines, item, level)
			default:
				lines = append(lines, "- "+fmt.Sprint(item))
			}
		}
	default:
		lines = append(lines, fmt.Sprint(val))
	}
	return lines
}
