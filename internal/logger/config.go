package logger

type Config struct {
	Level      string
	FileName   string // empty logs to stderr
	MaxSize    int    // megabytes per file before rotation
	MaxAge     int    // days
	MaxBackups int
	Compress   bool
	JSON       bool
}

func DefaultConfig() *Config {
	return &Config{
		Level:      "INFO",
		MaxSize:    10,
		MaxAge:     30,
		MaxBackups: 5,
	}
}
