package models

// Greeting is returned by the root endpoint.
type Greeting struct {
	Message     string `json:"message"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// Health statuses.
const (
	StatusHealthy  = "healthy"
	StatusReady    = "ready"
	StatusNotReady = "not ready"
	CheckOK        = "ok"
)

// Health is the liveness probe response.
type Health struct {
	Status    string            `json:"status"`
	Timestamp float64           `json:"timestamp"` // Unix time in seconds
	Checks    map[string]string `json:"checks"`
}

// Readiness is the readiness probe response.
type Readiness struct {
	Status    string  `json:"status"`
	Timestamp float64 `json:"timestamp"` // Unix time in seconds
}

// Item is a sample data record.
type Item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ItemList wraps items with their count.
type ItemList struct {
	Data  []Item `json:"data"`
	Count int    `json:"count"`
}

// Error is the body of every error response.
type Error struct {
	Error string `json:"error"`
}
