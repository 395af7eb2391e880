package config

import (
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"
)

// LoadYAMLConfig constructs an AppConfiguration struct from a YAML file. An
// empty path yields an empty configuration, leaving environment variables
// and defaults in charge.
func LoadYAMLConfig(path string) (AppConfiguration, error) {
	var conf AppConfiguration
	if path == "" {
		return conf, nil
	}
	f, err := os.Open(path)
	if f != nil {
		defer f.Close()
	}
	if err != nil {
		return conf, err
	}

	contents, err := ioutil.ReadAll(f)
	if err != nil {
		return conf, err
	}

	err = yaml.Unmarshal(contents, &conf)
	if err != nil {
		return conf, err
	}

	return conf, nil
}
