package wakatime

// GrandTotal is the aggregate coding time for one day.
type GrandTotal struct {
	Text         string  `json:"text"`
	TotalSeconds float64 `json:"total_seconds"`
}

// Language is per-language coding time within a day.
type Language struct {
	Name         string  `json:"name"`
	Text         string  `json:"text"`
	TotalSeconds float64 `json:"total_seconds"`
	Percent      float64 `json:"percent"`
}

// DateRange identifies the day a summary covers.
type DateRange struct {
	Date string `json:"date"`
}

// DayStats is the telemetry for a single day. When the API reports no data
// for a range the client substitutes a zeroed value rather than failing.
type DayStats struct {
	GrandTotal GrandTotal `json:"grand_total"`
	Languages  []Language `json:"languages"`
	Range      DateRange  `json:"range"`
}

// Summaries is the raw summaries payload for a date range.
type Summaries struct {
	Data []DayStats `json:"data"`
}

// zeroDayStats returns the empty-range substitute for date.
func zeroDayStats(date string) *DayStats {
	return &DayStats{
		GrandTotal: GrandTotal{Text: "0 secs"},
		Languages:  []Language{},
		Range:      DateRange{Date: date},
	}
}
