package main

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// configFile is the optional on-disk companion to the flags: the same
// settings, for people who'd rather not put credentials in their shell
// history. Durations are strings ("30s", "1m") because YAML has no
// duration type.
type configFile struct {
	URL       string  `yaml:"url"`
	Username  string  `yaml:"username"`
	Password  string  `yaml:"password"`
	Profile   string  `yaml:"profile"`
	Attempts  int     `yaml:"attempts"`
	PollDelay string  `yaml:"poll-delay"`
	Timeout   string  `yaml:"timeout"`
	RPS       float64 `yaml:"rps"`
}

// loadConfigFile reads the named config file, or ~/.stagectl.yaml when
// none is named. A missing default file is fine; a missing named one
// is an error, as is anything malformed.
func loadConfigFile(path string) (configFile, string, error) {
	var cfg configFile

	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, path, nil
		}
		path = filepath.Join(home, ".stagectl.yaml")
	}

	buf, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, path, nil
		}
		return cfg, path, errors.Wrapf(err, "reading config file %s", path)
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, path, errors.Wrapf(err, "parsing config file %s", path)
	}
	return cfg, path, nil
}

// resolve picks a string setting: explicit flag first, then the
// environment, then the config file, then the built-in default.
func resolve(flagChanged bool, flagValue, envValue, fileValue, fallback string) string {
	switch {
	case flagChanged:
		return flagValue
	case envValue != "":
		return envValue
	case fileValue != "":
		return fileValue
	}
	return fallback
}
