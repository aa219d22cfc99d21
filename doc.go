// Package risk computes historical-simulation risk metrics from daily closing prices.
//
// The computation is a linear pipeline, applied independently to every ticker:
//   - Series building: raw (date, ticker, close) records are validated and grouped
//     into one chronologically ordered [PriceSeries] per ticker.
//   - Returns: each series is turned into its daily log returns, see [LogReturns].
//   - Estimation: the returns give the annualised volatility and the historical
//     Value-at-Risk at a given confidence level, see [Estimate].
//
// [NewReport] runs the pipeline over a whole universe of tickers and collects one
// [RiskMetrics] row per ticker, along with the warnings raised by malformed records.
//
// Every function of the pipeline is pure: inputs are never modified, and missing
// data is reported as undefined metrics rather than errors.
//
// This package serves as the foundational logic for the `rsk` command-line tool.
package risk
