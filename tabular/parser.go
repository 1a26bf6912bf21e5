package tabular

import "strings"

// Record maps a column title to the trimmed field value parsed from one
// data row.
type Record map[string]string

// Parse reads a fixed-width table whose first line is the header. Column
// boundaries are derived from the character positions of the header
// titles: a column starts where its title starts and ends one character
// before the next title starts; the last column runs to the end of each
// line. Data rows are sliced on those boundaries and trimmed.
//
// An empty or header-only input yields no records, since a table with
// nothing in it is a valid table.
func Parse(lines []string) []Record {
	if len(lines) < 2 {
		return []Record{}
	}

	header := lines[0]
	titles := strings.Fields(header)
	if len(titles) == 0 {
		return []Record{}
	}

	starts := make([]int, len(titles))
	searchFrom := 0
	for i, title := range titles {
		starts[i] = searchFrom + strings.Index(header[searchFrom:], title)
		searchFrom = starts[i] + len(title)
	}

	ends := make([]int, len(titles))
	for i := 0; i < len(titles)-1; i++ {
		ends[i] = starts[i+1] - 1
	}

	records := []Record{}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		record := Record{}
		for i, title := range titles {
			end := len(line)
			if i < len(titles)-1 {
				end = ends[i]
			}
			record[title] = strings.TrimSpace(slice(line, starts[i], end))
		}
		records = append(records, record)
	}

	return records
}

func slice(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return line[start:end]
}
