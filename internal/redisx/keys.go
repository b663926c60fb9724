package redisx

import "time"

const (
	// Summary of the latest fetch cycle: fetch:last_run -> JSON poller.Run
	KeyLastRun = "fetch:last_run"
)

var (
	TTLLastRun = 7 * 24 * time.Hour
)
