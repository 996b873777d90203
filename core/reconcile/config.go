package reconcile

import "time"

// Config holds the defaults applied to reconciliation runs.
type Config struct {
	// Margin is the default numeric tolerance.
	Margin float64 `mapstructure:"margin" default:"0"`
	// Workers bounds concurrent document pairs.
	Workers int `mapstructure:"workers" default:"4"`
	// CacheTTLSeconds keeps extracted documents between runs. Zero disables the cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
	// OutputDir is where the CLI writes report workbooks.
	OutputDir string `mapstructure:"output_dir" default:"reports"`
}

// CacheTTL returns the document cache lifetime.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// NewSpec builds a run spec from the configured defaults.
func (c Config) NewSpec(ex Extractor, cache *DocumentCache) *Spec {
	return &Spec{
		Extractor: ex,
		Margin:    c.Margin,
		Workers:   c.Workers,
		Cache:     cache,
	}
}
