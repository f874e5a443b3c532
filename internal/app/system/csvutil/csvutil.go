// internal/app/system/csvutil/csvutil.go

// Package csvutil holds shared helpers for CSV downloads.
package csvutil

import (
	"net/http"
	"strings"
)

// BOM is the UTF-8 byte-order mark Excel needs to detect the encoding.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Sanitize neutralizes spreadsheet formula injection: a field beginning with
// =, +, -, or @ is prefixed with a single quote so Excel/Sheets treat it as
// text.
func Sanitize(field string) string {
	if field == "" {
		return field
	}
	switch field[0] {
	case '=', '+', '-', '@':
		return "'" + field
	}
	return field
}

// SetDownloadHeaders prepares w for a CSV attachment with the given filename.
func SetDownloadHeaders(w http.ResponseWriter, filename string) {
	filename = strings.ReplaceAll(filename, `"`, "")
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
}
