// internal/logger/config.go
package logger

// Config управляет выводом логов: консоль и ротируемый JSON файл.
// MaxSize задаётся в мегабайтах, MaxAge в днях.
type Config struct {
	LogFile     string `mapstructure:"log_file"`
	MaxSize     int    `mapstructure:"max_size_mb"`
	MaxAge      int    `mapstructure:"max_age_days"`
	MaxBackups  int    `mapstructure:"max_backups"`
	Compress    bool   `mapstructure:"compress"`
	Development bool   `mapstructure:"development"`
	Pretty      bool   `mapstructure:"pretty"`
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		LogFile:     "dumpfun.log",
		MaxSize:     100,
		MaxAge:      7,
		MaxBackups:  3,
		Compress:    true,
		Development: false,
		Pretty:      true,
	}
}
