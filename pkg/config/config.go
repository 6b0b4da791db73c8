/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"jinr.ru/greenlab/go-muse/pkg/device"
	"jinr.ru/greenlab/go-muse/pkg/log"
)

type ApiConfig struct {
	Address string `yaml:"address,omitempty"`
	Port    int    `yaml:"port,omitempty"`
}

type Config struct {
	LogLevel string `yaml:"log_level"`
	// Model is used for headbands not found in the device database
	Model string `yaml:"model"`
	// DeviceName is the advertised name of the headband
	DeviceName   string `yaml:"device_name,omitempty"`
	SamplingRate int    `yaml:"sampling_rate"`
	DBPath       string `yaml:"db_path"`
	*ApiConfig   `yaml:"api,omitempty"`
	filepath     string
}

func (c *Config) Path() string {
	return c.filepath
}

func (c *Config) SetPath(path string) {
	c.filepath = path
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	return os.WriteFile(c.filepath, data, 0644)
}

// LoadConfig reads the config file over the current values.
// A missing file is not an error, the current values are kept.
func (c *Config) LoadConfig() error {
	data, err := os.ReadFile(c.filepath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("Config file %s not found, using defaults", c.filepath)
		return nil
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return ErrConfig{What: fmt.Sprintf("%s: %s", c.filepath, err)}
	}
	return nil
}

func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return ErrConfig{What: err.Error()}
	}
	if _, err := device.ParseModel(c.Model); err != nil {
		return ErrConfig{What: err.Error()}
	}
	if c.SamplingRate <= 0 {
		return ErrConfig{What: fmt.Sprintf("sampling rate must be positive: %d", c.SamplingRate)}
	}
	if c.ApiConfig == nil {
		return ErrConfig{What: "api section is missing"}
	}
	if c.Port <= 0 || c.Port > 65535 {
		return ErrConfig{What: fmt.Sprintf("wrong api port: %d", c.Port)}
	}
	return nil
}

// GetModel returns the configured model
func (c *Config) GetModel() (device.Model, error) {
	return device.ParseModel(c.Model)
}

func (c *Config) ApiURL() string {
	return fmt.Sprintf("http://%s:%d", c.Address, c.Port)
}

func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir)
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), ConfigFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel:     DefaultLogLevel,
		Model:        DefaultModel,
		SamplingRate: DefaultSamplingRate,
		DBPath:       filepath.Join(DefaultConfigDir(), DBFile),
		ApiConfig: &ApiConfig{
			Address: DefaultApiAddress,
			Port:    DefaultApiPort,
		},
		filepath: DefaultConfigPath(),
	}
}
