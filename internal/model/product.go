package model

// Product is a priced care offering resolved from the catalog by
// (care level, room type, residence, term type).  The catalog is an
// opaque lookup to the rest of the system; contracts only keep the
// resolved code and daily rate.
type Product struct {
	Code      string  `json:"code"`
	DailyRate float64 `json:"daily_rate"`
}
