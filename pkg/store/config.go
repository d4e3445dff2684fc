package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// DefaultSummaryTop is how many entries a daily summary draws on.
	DefaultSummaryTop = 3
	defaultPath       = "~/.mindlog.db"
)

type Config interface {
	BasePath() string
	SummaryTop() int
}

func LoadConfig() (Config, error) {
	viper.SetDefault("path", defaultPath)
	viper.SetDefault("summary.top", DefaultSummaryTop)
	viper.SetConfigName(".mindlog") // .yaml is implicit
	viper.SetEnvPrefix("MINDLOG")
	viper.AutomaticEnv()

	if override := os.Getenv("MINDLOG_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("expand store path: %w", err)
	}

	return &fileConfig{Path: path, Top: viper.GetInt("summary.top")}, nil
}

type fileConfig struct {
	Path string `json:"path"`
	Top  int    `json:"summaryTop"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) SummaryTop() int {
	return f.Top
}
