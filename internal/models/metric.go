package models

// Metric is a single named dashboard value owned by one user.
// Value stays a string end to end; the server never parses it numerically.
type Metric struct {
	ID       string `json:"id"`
	UserID   int    `json:"userId"`
	Title    string `json:"title"`
	Value    string `json:"value"`
	Category string `json:"category"`
}

// MetricTombstone is broadcast in place of the record after a delete.
type MetricTombstone struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
