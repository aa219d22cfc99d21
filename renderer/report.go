// Package renderer renders risk reports for humans.
package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/risk"
	"github.com/guregu/null/v6"
	md "github.com/nao1215/markdown"
)

// percent formats a ratio as a percentage, or NA if undefined.
func percent(v null.Float) string {
	if !v.Valid {
		return risk.NA
	}
	return fmt.Sprintf("%.2f%%", v.ValueOrZero()*100)
}

// ReportMarkdown renders the report as a markdown document.
//
// Metrics are shown as percentages. Warnings, if any, are listed after the metrics table.
func ReportMarkdown(r *risk.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Risk Report")
	conf := strconv.FormatFloat(r.Confidence*100, 'f', -1, 64) + "%"
	intro := fmt.Sprintf("Historical VaR at %s confidence, volatility annualised over %d trading days.", conf, r.TradingDaysPerYear)
	if !r.Span.IsZero() {
		intro += fmt.Sprintf(" Prices from %s to %s.", r.Span.From, r.Span.To)
	}
	doc.PlainText(intro)

	doc.H2("Metrics")
	table := md.TableSet{
		Header: []string{"Ticker", "Sample Size", "Annualised Volatility", "VaR " + conf},
		Rows:   make([][]string, 0, len(r.Rows)),
	}
	for _, m := range r.Rows {
		table.Rows = append(table.Rows, []string{
			m.Ticker,
			strconv.Itoa(m.SampleSize),
			percent(m.AnnualisedVolatility),
			percent(m.HistoricalVaR),
		})
	}
	doc.CustomTable(table, md.TableOptions{AutoWrapText: false, AutoFormatHeaders: false})

	if len(r.Warnings) > 0 {
		doc.H2("Warnings")
		items := make([]string, len(r.Warnings))
		for i, w := range r.Warnings {
			items[i] = w.Error()
		}
		doc.BulletList(items...)
	}

	return doc.String()
}
