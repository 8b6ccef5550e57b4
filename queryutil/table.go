package queryutil

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/olekukonko/tablewriter"
)

// PrintResultsTable prints the contents of the given record as an aligned
// console table, framed by the same header and footer lines as PrintResults.
func PrintResultsTable(rec arrow.Record) {
	printFramed(fillerHeader, "Query results")

	table := tablewriter.NewWriter(stdout)
	table.SetAutoFormatHeaders(false)
	table.SetRowLine(false)
	table.SetBorder(false)
	table.SetAutoWrapText(true)

	headers := make([]string, rec.NumCols())
	for i := range headers {
		headers[i] = rec.ColumnName(i)
	}
	table.SetHeader(headers)

	for r := 0; r < int(rec.NumRows()); r++ {
		row := make([]string, rec.NumCols())
		for c := 0; c < int(rec.NumCols()); c++ {
			row[c] = cellString(rec.Column(c), r)
		}
		table.Append(row)
	}
	table.Render()

	printFramed(fillerFooter, fmt.Sprintf("Number of records retrieved: %d", rec.NumRows()))
}
