package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	WordBank WordBankConfig `mapstructure:"wordbank"`
	Game     GameConfig     `mapstructure:"game"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
}

// WordBankConfig selects where the word catalog lives. The file backend
// is the default and needs no external services.
type WordBankConfig struct {
	Backend  string         `mapstructure:"backend"` // file, postgres or gorm
	File     string         `mapstructure:"file"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type GameConfig struct {
	TurnSeconds        int           `mapstructure:"turn_seconds"`
	SessionIdleTimeout time.Duration `mapstructure:"session_idle_timeout"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.http_address", ":8080")
	viper.SetDefault("server.rpc_address", ":8081")
	viper.SetDefault("server.metrics_address", ":9100")
	viper.SetDefault("wordbank.backend", "file")
	viper.SetDefault("wordbank.file", "data.json")
	viper.SetDefault("wordbank.postgres.host", "localhost")
	viper.SetDefault("wordbank.postgres.port", 5432)
	viper.SetDefault("game.turn_seconds", 60)
	viper.SetDefault("game.session_idle_timeout", "10m")

	viper.AutomaticEnv()

	// A missing config file is fine, the defaults above carry the server.
	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	err = viper.Unmarshal(&config)
	return
}
