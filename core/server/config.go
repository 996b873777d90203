package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables authentication.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitKB bounds request bodies.
	BodyLimitKB int `mapstructure:"body_limit_kb" default:"64"`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	return ":" + c.Port
}

// Secured reports whether requests must carry the API key.
func (c Config) Secured() bool {
	return c.ApiKey != ""
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitKB <= 0 {
		return 64 * 1024
	}
	return c.BodyLimitKB * 1024
}
