package gateway

import "time"

// Operation identifies one job API call.
type Operation string

const (
	OpColorDetails Operation = "color_details"
	OpItems        Operation = "items_for_color"
	OpSave         Operation = "save_color_changes"
	OpSearch       Operation = "search_job_numbers"
	OpJobDetails   Operation = "job_details"
)

// Config holds the connection settings for the job API.
type Config struct {
	BaseURL    string
	TimeoutMs  int
	MaxRetries int

	// OpTimeoutsMs overrides TimeoutMs per operation when > 0.
	OpTimeoutsMs map[Operation]int
}

// DefaultConfig returns a Config pointing at a local job API.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "http://localhost:3001/api",
		TimeoutMs:  10000,
		MaxRetries: 1,
		OpTimeoutsMs: map[Operation]int{
			OpSearch: 4000,
			OpSave:   20000,
		},
	}
}

// Timeout returns the effective timeout for op.
func (c Config) Timeout(op Operation) time.Duration {
	ms := c.TimeoutMs
	if v, ok := c.OpTimeoutsMs[op]; ok && v > 0 {
		ms = v
	}
	if ms <= 0 {
		ms = 10000
	}
	return time.Duration(ms) * time.Millisecond
}
