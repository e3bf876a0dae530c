package dto

// GoogleFinanceQuote is one element of the finance/info ticker quote array.
type GoogleFinanceQuote struct {
	Ticker            string `json:"t"`
	Exchange          string `json:"e"`
	LastTradePrice    string `json:"l"`
	LastTradeDateTime string `json:"lt_dts"`
	Change            string `json:"c"`
	ChangePercent     string `json:"cp"`
	PreviousClose     string `json:"pcls_fix"`
}
