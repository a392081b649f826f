package ratelimit

import "strings"

// MatchEndpoint finds the endpoint config for a path and method. Exact
// matches win over prefix matches; nil means no endpoint-specific config
// applies.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	for i := range configs {
		config := &configs[i]
		if config.Method != "" && config.Method != method {
			continue
		}
		if config.Pattern == path {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method != "" && config.Method != method {
			continue
		}
		if strings.HasSuffix(config.Pattern, "/") && strings.HasPrefix(path, config.Pattern) {
			return config
		}
	}

	return nil
}
