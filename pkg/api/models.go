package api

import "time"

type LogEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	IP         string    `json:"ip"`
	StatusCode int       `json:"status_code"`
	RequestID  string    `json:"request_id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Duration   float64   `json:"duration_sec"`
	Size       int       `json:"size"`
	Service    string    `json:"service"`
}

type TestRequest struct {
	Text string `json:"text"`
}

type DictionaryStats struct {
	Blacklist int `json:"blacklist"`
	Whitelist int `json:"whitelist"`
}
