package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort           string        `mapstructure:"SERVER_PORT"`
	FlightSchedulesURL   string        `mapstructure:"FLIGHT_SCHEDULES_URL"`
	PassengerCheckinsURL string        `mapstructure:"PASSENGER_CHECKINS_URL"`
	AggregationInterval  time.Duration `mapstructure:"AGGREGATION_INTERVAL"`
	UpstreamTimeout      time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`
	StoreBackend         string        `mapstructure:"STORE_BACKEND"`
	StatsFile            string        `mapstructure:"STATS_FILE"`
	PostgresURL          string        `mapstructure:"POSTGRES_URL"`
	RedisAddr            string        `mapstructure:"REDIS_ADDR"`
	RedisPassword        string        `mapstructure:"REDIS_PASSWORD"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8100")
	viper.SetDefault("FLIGHT_SCHEDULES_URL", "http://localhost:8090/events/flight-schedules")
	viper.SetDefault("PASSENGER_CHECKINS_URL", "http://localhost:8090/events/passenger-checkins")
	viper.SetDefault("AGGREGATION_INTERVAL", "30s")
	viper.SetDefault("UPSTREAM_TIMEOUT", "10s")
	viper.SetDefault("STORE_BACKEND", "file")
	viper.SetDefault("STATS_FILE", "event_stats.json")
	viper.SetDefault("POSTGRES_URL", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
