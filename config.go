package routex

// Config controls optional performance behavior of a Router. The zero value
// is a valid Config with the prefilter disabled; DefaultConfig enables it.
type Config struct {
	// EnablePrefilter builds a literal-prefix Aho-Corasick gate during
	// Rebuild and consults it before every walk of the compact automaton.
	// The gate can only ever reject paths the automaton would also reject;
	// disabling it changes performance, never match results.
	EnablePrefilter bool
}

// DefaultConfig returns the configuration used by New.
//
// Example:
//
//	cfg := routex.DefaultConfig()
//	cfg.EnablePrefilter = false
//	r := routex.NewWithConfig("/api", cfg)
func DefaultConfig() Config {
	return Config{
		EnablePrefilter: true,
	}
}
