// Package export renders transaction collections for download.
package export

import (
	"strconv"
	"strings"

	"finvue/internal/models"
)

// csvHeader is the fixed column order of an export.
const csvHeader = "Date,Description,Category,Type,Amount,Currency"

// CSV renders one row per transaction, in the order given (the caller's
// current view order). Description and Category are always
// double-quoted with internal quotes doubled; Amount stays an unquoted
// numeric so spreadsheets parse it as a number. encoding/csv is not
// used because it cannot quote some columns unconditionally while
// leaving others bare.
func CSV(txs []models.Transaction) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for _, t := range txs {
		b.WriteString(t.Date.String())
		b.WriteByte(',')
		b.WriteString(quote(t.Description))
		b.WriteByte(',')
		b.WriteString(quote(t.Category))
		b.WriteByte(',')
		b.WriteString(string(t.Type))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(t.Amount, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(t.CurrencyCode)
		b.WriteByte('\n')
	}

	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
