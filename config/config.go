package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Port           string
	Timezone       string
	DBPath         string
	LogPath        string
	Debug          bool
	ImportMaxBytes int64
	// EnvFiles lists the env files that were actually read.
	EnvFiles []string
}

// Load reads env files and then the process environment. Variables already
// set in the environment win over env files. With no envFiles an optional
// .env is read; files named explicitly must exist.
func Load(envFiles ...string) (AppConfig, error) {
	var loaded []string
	if len(envFiles) == 0 {
		switch err := godotenv.Load(); {
		case err == nil:
			loaded = []string{".env"}
		case !errors.Is(err, fs.ErrNotExist):
			return AppConfig{}, fmt.Errorf("load .env: %w", err)
		}
	} else {
		if err := godotenv.Load(envFiles...); err != nil {
			return AppConfig{}, fmt.Errorf("load env files %v: %w", envFiles, err)
		}
		loaded = envFiles
	}

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("TZ", "America/Bogota")
	v.SetDefault("DB_PATH", "vivero.db")
	v.SetDefault("LOG_PATH", "")
	v.SetDefault("DEBUG", false)
	v.SetDefault("IMPORT_MAX_BYTES", 5<<20)
	v.AutomaticEnv()

	return AppConfig{
		Port:           v.GetString("PORT"),
		Timezone:       v.GetString("TZ"),
		DBPath:         v.GetString("DB_PATH"),
		LogPath:        v.GetString("LOG_PATH"),
		Debug:          v.GetBool("DEBUG"),
		ImportMaxBytes: v.GetInt64("IMPORT_MAX_BYTES"),
		EnvFiles:       loaded,
	}, nil
}

// LogValue is what the config.loaded boot entry carries.
func (c AppConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("port", c.Port),
		slog.String("db_path", c.DBPath),
		slog.String("tz", c.Timezone),
		slog.String("log_path", c.LogPath),
		slog.Bool("debug", c.Debug),
		slog.Int64("import_max_bytes", c.ImportMaxBytes),
		slog.Any("env_files", c.EnvFiles),
	)
}
