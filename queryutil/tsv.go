package queryutil

import (
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

// ToTSVString renders a record as tab-separated text: one header line with
// the field names, then one line per row with the cell values. Null cells
// render as "null". The result carries no trailing newline.
func ToTSVString(rec arrow.Record) string {
	var sb strings.Builder
	for i, f := range rec.Schema().Fields() {
		if i > 0 {
			sb.WriteByte('\t')
		}
		sb.WriteString(f.Name)
	}
	for row := 0; row < int(rec.NumRows()); row++ {
		sb.WriteByte('\n')
		for col := 0; col < int(rec.NumCols()); col++ {
			if col > 0 {
				sb.WriteByte('\t')
			}
			sb.WriteString(cellString(rec.Column(col), row))
		}
	}
	return sb.String()
}

func cellString(arr arrow.Array, row int) string {
	if arr.IsNull(row) {
		return "null"
	}
	return arr.ValueStr(row)
}
