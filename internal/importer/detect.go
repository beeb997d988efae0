package importer

import (
	"bytes"
	"strings"

	"github.com/cchawn/toolbox/internal/model"
)

// Detect classifies a file by its first line. The checks overlap, so their
// order matters; anything unrecognized is assumed to be a headerless TD
// export.
func Detect(firstLine string) model.Format {
	line := strings.ToLower(firstLine)
	switch {
	case containsAll(line, "filter", "type of transaction"):
		return model.FormatScotiabank
	case strings.Contains(line, "transaction_date"):
		return model.FormatWealthsimpleCard
	case containsAll(line, "date", "transaction", "balance", "currency"):
		return model.FormatWealthsimpleCash
	case containsAll(line, "date", "description", "amount"):
		return model.FormatAmex
	default:
		return model.FormatTD
	}
}

// FirstLine returns the first line of data without a BOM or line ending.
func FirstLine(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[:i]
	}
	return strings.TrimRight(string(data), "\r")
}

// LooksLikeTD reports whether line parses as a TD data row. Used to tell a
// genuine TD file from an unrecognized layout that fell through Detect.
func LooksLikeTD(line string) bool {
	rec, err := readRecords(strings.NewReader(line))
	if err != nil || len(rec.rows) != 1 {
		return false
	}
	row := rec.rows[0]
	if len(row) < tdMinFields {
		return false
	}
	_, ok := parseDate(row[tdColDate])
	return ok
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
