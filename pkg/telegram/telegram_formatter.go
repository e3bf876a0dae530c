package telegram

import (
	"fmt"
	"strings"
	"time"
)

// FormatShareUpdateMessage formats a day-over-day price move, e.g. "📈*AAPL* 170.00 -> 171.70 +1.70 (+1.00%)".
// change is the signed absolute move as reported for the share.
func FormatShareUpdateMessage(emoji, symbol string, prevClose, price float64, change string, changePercent float64) string {
	return fmt.Sprintf("%s*%s* %.2f -> %.2f %s (%+.2f%%)", emoji, EscapeMarkdown(symbol), prevClose, price, change, changePercent)
}

// FormatShareFailureMessage is posted when a symbol could not be fetched after all retries.
func FormatShareFailureMessage(symbol string) string {
	return fmt.Sprintf("Couldn't get info for symbol \"%s\"", EscapeMarkdown(symbol))
}

// FormatNextRunMessage describes the next scheduled update for the status log and API.
func FormatNextRunMessage(next time.Time) string {
	if next.IsZero() {
		return "Next update is not scheduled"
	}
	return fmt.Sprintf("Next update is scheduled to run %s", next.Format("Mon, 02 Jan 2006 15:04 MST"))
}

// EscapeMarkdown escapes characters that break legacy Markdown parse mode.
func EscapeMarkdown(text string) string {
	replacer := strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")
	return replacer.Replace(text)
}
