package dto

// AlphaVantageDailyResponse is the body of the TIME_SERIES_DAILY function.
type AlphaVantageDailyResponse struct {
	MetaData     AlphaVantageMetaData              `json:"Meta Data"`
	TimeSeries   map[string]AlphaVantageDailyEntry `json:"Time Series (Daily)"`
	ErrorMessage string                            `json:"Error Message"`
	Note         string                            `json:"Note"`
	Information  string                            `json:"Information"`
}

type AlphaVantageMetaData struct {
	Symbol        string `json:"2. Symbol"`
	LastRefreshed string `json:"3. Last Refreshed"`
	TimeZone      string `json:"5. Time Zone"`
}

type AlphaVantageDailyEntry struct {
	Open  string `json:"1. open"`
	High  string `json:"2. high"`
	Low   string `json:"3. low"`
	Close string `json:"4. close"`
}
