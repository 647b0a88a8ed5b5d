package config

// Config represents the full Questboard configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// StorageConfig selects the task/achievement store
type StorageConfig struct {
	// Backend is "memory" or "sqlite"
	Backend string `yaml:"backend" mapstructure:"backend"`
	// Path of the SQLite database; empty means $QB_DB or ~/.questboard.db
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures the slog handler
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}
