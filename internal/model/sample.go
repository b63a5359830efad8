package model

import "time"

// Counters holds cumulative byte totals as reported by the OS for one
// interface (or summed across all of them). Monotonically non-decreasing
// unless the interface resets.
type Counters struct {
	Sent uint64
	Recv uint64
}

// Sample is the full snapshot exchanged between the sampling engine and the
// renderers. Produced fresh every tick; never mutated after construction.
type Sample struct {
	Iface       string    `json:"interface"`
	Interval    float64   `json:"interval_seconds"`
	SentRate    float64   `json:"sent_rate_bps"`
	RecvRate    float64   `json:"recv_rate_bps"`
	SentRateEMA float64   `json:"sent_rate_ema_bps"`
	RecvRateEMA float64   `json:"recv_rate_ema_bps"`
	EMAEnabled  bool      `json:"ema_enabled"`
	EMAAlpha    float64   `json:"ema_alpha"`
	TotalSent   int64     `json:"total_sent_bytes"`
	TotalRecv   int64     `json:"total_recv_bytes"`
	Uptime      float64   `json:"uptime_seconds"`
	Timestamp   time.Time `json:"timestamp"`
}
