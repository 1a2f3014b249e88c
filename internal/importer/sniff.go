package importer

// DefaultDelimiter is used when no candidate fits the sample.
const DefaultDelimiter = ','

// Candidates are tried in this order; earlier entries win ties.
var Candidates = []rune{',', ';', '\t', '|'}

// SniffDelimiter guesses the field delimiter from the start of a file. The
// first record is treated as the header. For every candidate that occurs in
// the header, it counts how many sampled records contain the same number of
// that delimiter. The candidate with the most agreeing records wins; ties go
// to the higher per-record count and then to candidate order.
func SniffDelimiter(sample string, truncated bool) rune {
	records := splitRecords(sample)
	if truncated && len(records) > 1 {
		// the last record may have been cut mid-line
		records = records[:len(records)-1]
	}
	if len(records) == 0 {
		return DefaultDelimiter
	}

	best := DefaultDelimiter
	bestAgree, bestCount := 0, 0
	for _, candidate := range Candidates {
		headerCount := countOutsideQuotes(records[0], candidate)
		if headerCount == 0 {
			continue
		}

		agree := 0
		for _, record := range records {
			if countOutsideQuotes(record, candidate) == headerCount {
				agree++
			}
		}

		if agree > bestAgree || (agree == bestAgree && headerCount > bestCount) {
			best, bestAgree, bestCount = candidate, agree, headerCount
		}
	}
	return best
}

// splitRecords splits on line breaks that are not inside a quoted field and
// drops blank records.
func splitRecords(s string) []string {
	var records []string
	inQuotes := false
	start := 0

	flush := func(end int) {
		record := s[start:end]
		if len(record) > 0 && record[len(record)-1] == '\r' {
			record = record[:len(record)-1]
		}
		if record != "" {
			records = append(records, record)
		}
	}

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuotes = !inQuotes
		case '\n':
			if !inQuotes {
				flush(i)
				start = i + 1
			}
		}
	}
	if start < len(s) {
		flush(len(s))
	}
	return records
}

func countOutsideQuotes(record string, delimiter rune) int {
	count := 0
	inQuotes := false
	for _, r := range record {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delimiter && !inQuotes:
			count++
		}
	}
	return count
}
