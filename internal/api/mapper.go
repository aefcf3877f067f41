package api

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/opsbench/cpuload-agent/internal/core"
)

// FromCoreSnapshot converts core.Snapshot to the public StatusResponse.
// The configured default is reported regardless of any per-request
// override used by the most recent start call.
func FromCoreSnapshot(s core.Snapshot, cpuPercent float64, uptimeSec int64) StatusResponse {
	status := statusInactive
	message := msgStatusInactive
	if s.Active {
		status = statusActive
		message = msgStatusActive
	}
	return StatusResponse{
		Status:                  status,
		Message:                 message,
		FibIterationsConfigured: s.DefaultIterations,
		CurrentThreadAlive:      s.TaskAlive,
		CPUUtilizationPercent:   cpuPercent,
		UptimeSec:               uptimeSec,
	}
}

// resolveIterations interprets an optional start request body. An
// unreadable or non-JSON body counts as absent and resolves to the
// default. A present "iterations" value must be a base-10 integer,
// possibly string-encoded, and strictly positive; anything else yields
// the matching contract error string.
func resolveIterations(r io.Reader, def int64) (int64, *ErrorResponse) {
	var body map[string]any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return def, nil
	}

	raw, ok := body["iterations"]
	if !ok {
		return def, nil
	}

	var text string
	switch v := raw.(type) {
	case json.Number:
		text = v.String()
	case string:
		text = v
	default:
		return 0, &ErrorResponse{Error: errIterationsNotInteger}
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, &ErrorResponse{Error: errIterationsNotInteger}
	}
	if n <= 0 {
		return 0, &ErrorResponse{Error: errIterationsNotPositive}
	}
	return n, nil
}
