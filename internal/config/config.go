package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/dontwakethemonster/internal/entity"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis             Redis  `yaml:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"monster.db"`
	DefaultLocale     string `yaml:"default-locale" env:"DEFAULT_LOCALE" env-default:"en-US"`
	Game              Game   `yaml:"game"`
}

type Redis struct {
	Host       string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port       string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	DB         int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"REDIS_SESSION_TTL" env-default:"24h"`
}

// Game holds the board and turn constants. They are copied into entity.Rules
// once at start-up.
type Game struct {
	BoardLength          int           `yaml:"board-length" env-default:"13"`
	BoardJitter          int           `yaml:"board-jitter" env-default:"0"`
	MineCount            int           `yaml:"mine-count" env-default:"3"`
	BeanCount            int           `yaml:"bean-count" env-default:"6"`
	MinPlayers           int           `yaml:"min-players" env-default:"2"`
	MaxPlayers           int           `yaml:"max-players" env-default:"4"`
	MaxStepsPerTurn      int           `yaml:"max-steps-per-turn" env-default:"5"`
	StepTimeout          time.Duration `yaml:"step-timeout" env-default:"10s"`
	RollCallTimeout      time.Duration `yaml:"roll-call-timeout" env-default:"50s"`
	RollCallRetryTimeout time.Duration `yaml:"roll-call-retry-timeout" env-default:"30s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads path and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Redis.SessionTTL <= 0 {
		return fmt.Errorf("invalid redis session-ttl %s", that.Redis.SessionTTL)
	}

	if err := that.Game.Rules().Validate(); err != nil {
		return fmt.Errorf("invalid game settings: %w", err)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that Game) Rules() entity.Rules {
	return entity.Rules{
		BoardLength:          that.BoardLength,
		BoardJitter:          that.BoardJitter,
		MineCount:            that.MineCount,
		BeanCount:            that.BeanCount,
		MinPlayers:           that.MinPlayers,
		MaxPlayers:           that.MaxPlayers,
		MaxStepsPerTurn:      that.MaxStepsPerTurn,
		StepTimeout:          that.StepTimeout,
		RollCallTimeout:      that.RollCallTimeout,
		RollCallRetryTimeout: that.RollCallRetryTimeout,
	}
}
