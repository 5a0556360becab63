package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

//Config is shared by every command. Keys follow the snake_case names of the json configs.
type Config struct {
	LogLevel string `mapstructure:"log_level"`

	FileNameModel  string `mapstructure:"filename_model"`
	FileNameJSON   string `mapstructure:"filename_json"`
	FileNameOutput string `mapstructure:"filename_output_model"`

	DumpPrefix        string `mapstructure:"dump_prefix"`
	FigureType        string `mapstructure:"figure_type"`
	PicturesDirectory string `mapstructure:"pictures_directory"`

	FileNameLeafIndices string `mapstructure:"filename_leaf_indices"`
	FileNameWeights     string `mapstructure:"filename_weights"`
	StatsPrefix         string `mapstructure:"stats_prefix"`
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("dump_prefix", "tree")
	v.SetDefault("figure_type", "svg")
	v.SetDefault("pictures_directory", ".")
}

//loadConfig merges the optional config file, OBL_* environment variables and bound flags.
func loadConfig(v *viper.Viper, configFile string) (Config, error) {
	var config Config
	setConfigDefaults(v)
	v.SetEnvPrefix("obl")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return config, errors.Wrapf(err, "reading config %s", configFile)
		}
	}
	if err := v.Unmarshal(&config); err != nil {
		return config, errors.Wrap(err, "decoding config")
	}

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return config, errors.Wrap(err, "parsing log level")
	}
	logrus.SetLevel(level)
	return config, nil
}

func requireSet(name, value string) error {
	if value == "" {
		return errors.Errorf("%s is not set", name)
	}
	return nil
}
