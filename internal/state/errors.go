package state

import "errors"

// ErrStale is returned when a packet type has not been received within the stale threshold.
var ErrStale = errors.New("state: telemetry data is stale")
