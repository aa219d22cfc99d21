package renderer

import (
	"bytes"
	"strconv"

	"github.com/etnz/risk"
	md "github.com/nao1215/markdown"
)

// ReturnsMarkdown renders the closes of a series next to their daily log returns.
// The first close has no return.
func ReturnsMarkdown(s *risk.PriceSeries, r *risk.ReturnSeries) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Log Returns of " + s.Ticker())

	table := md.TableSet{
		Header: []string{"Date", "Close", "Log Return"},
		Rows:   make([][]string, 0, s.Len()),
	}
	rets := make(map[string]float64, r.Len())
	for on, ret := range r.Values() {
		rets[on.String()] = ret
	}
	for on, price := range s.Values() {
		ret := risk.NA
		if v, ok := rets[on.String()]; ok {
			ret = strconv.FormatFloat(v, 'f', 6, 64)
		}
		table.Rows = append(table.Rows, []string{on.String(), strconv.FormatFloat(price, 'f', -1, 64), ret})
	}
	doc.CustomTable(table, md.TableOptions{AutoWrapText: false, AutoFormatHeaders: false})

	return doc.String()
}
