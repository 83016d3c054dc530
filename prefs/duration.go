package prefs

import (
	"strconv"
	"time"
)

// Duration reads key from src as a duration. Accepts Go duration syntax
// ("90s", "2m") and bare integers, which are taken as seconds the way the
// legacy properties format wrote them. Absent or unparsable values yield def.
func Duration(src Source, key string, def time.Duration) time.Duration {
	raw := src.Get(key, "")
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return def
}
