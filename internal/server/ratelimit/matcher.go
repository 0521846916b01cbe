package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig is the limit for one method and path pattern.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // Requests per window; zero or less means unlimited
	Window time.Duration // Refill window
	Burst  int           // Bucket capacity; defaults to Limit
}

func (c EndpointConfig) capacity() int {
	if c.Burst > 0 {
		return c.Burst
	}
	return c.Limit
}

// unlimited applies to health checks and the long-lived event stream.
var unlimited = []EndpointConfig{
	{Path: "/health", Method: "GET"},
	{Path: "/events", Method: "GET"},
}

// MatchEndpoint returns the rule for method and path, or nil when the default applies.
// Exact rules win over prefix rules; the longest prefix wins among prefix rules.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	for i := range unlimited {
		if unlimited[i].Path == path && unlimited[i].Method == method {
			return &unlimited[i]
		}
	}

	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method || !strings.HasSuffix(c.Path, "/") || !strings.HasPrefix(path, c.Path) {
			continue
		}
		if best == nil || len(c.Path) > len(best.Path) {
			best = c
		}
	}
	return best
}
