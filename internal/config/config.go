package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpireHours int    `yaml:"expire_hours"`
}

type RedisConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type SessionConfig struct {
	Secret string `yaml:"secret"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads the configuration file at path, falling back to defaults and
// environment overrides. A missing file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver:   "mysql",
			Host:     "localhost",
			Port:     "3306",
			User:     "taskly",
			Password: "taskly",
			Name:     "project_management",
		},
		JWT: JWTConfig{
			Secret:      "default-secret-key-change-me",
			ExpireHours: 72,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6379",
		},
		Session: SessionConfig{
			Secret: "default-session-secret-change-me",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func applyEnv(cfg *Config) {
	setEnv(&cfg.Server.Host, "SERVER_HOST")
	setEnv(&cfg.Server.Port, "SERVER_PORT")
	setEnv(&cfg.Server.Mode, "GIN_MODE")
	setEnv(&cfg.Database.Driver, "DB_DRIVER")
	setEnv(&cfg.Database.Host, "DB_HOST")
	setEnv(&cfg.Database.Port, "DB_PORT")
	setEnv(&cfg.Database.User, "DB_USER")
	setEnv(&cfg.Database.Password, "DB_PASSWORD")
	setEnv(&cfg.Database.Name, "DB_NAME")
	setEnv(&cfg.JWT.Secret, "JWT_SECRET")
	setEnv(&cfg.Redis.Host, "REDIS_HOST")
	setEnv(&cfg.Redis.Port, "REDIS_PORT")
	setEnv(&cfg.Session.Secret, "SESSION_SECRET")
	setEnv(&cfg.Log.Level, "LOG_LEVEL")
}

func setEnv(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}
