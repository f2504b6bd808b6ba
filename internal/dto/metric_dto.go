package dto

type CreateMetricRequest struct {
	Name string `json:"name"`
}

// ValueEntry is one observation in a value batch. Timestamp may be absent
// (record "now"), a JSON number (epoch seconds, used verbatim) or a string
// (day-first calendar date, converted to UTC epoch seconds).
type ValueEntry struct {
	Value     float64 `json:"value"`
	Timestamp any     `json:"timestamp,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
