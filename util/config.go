package util

import (
	_ "embed"
	"fmt"
	"gopkg.in/yaml.v3"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const Name = "simplewalls"
const ConfigFileName = "config.yaml"

//go:embed config_default.yaml
var embeddedConfig []byte

type AppConfig struct {
	Conf struct {
		ApiBaseUrl   string `yaml:"apiBaseUrl"`
		DatabaseFile string `yaml:"databaseFile"`
		PopupSeconds int    `yaml:"popupSeconds"`
	}
}

func ReadConf() (*AppConfig, error) {

	c := &AppConfig{}

	// Try to resolve config file path (local first, then user dir)
	configPath := ResolveFilePath(ConfigFileName)

	var buf []byte
	var err error

	// Try to read from resolved path
	buf, err = os.ReadFile(configPath)
	if err != nil {
		// If file doesn't exist, use embedded config and create user config file
		log.Printf("Config file not found at %s, using embedded defaults", configPath)
		buf = embeddedConfig

		// Try to write default config to user config directory
		configDir, dirErr := GetConfigDir()
		if dirErr == nil {
			userConfigPath := configDir + "/" + ConfigFileName
			writeErr := os.WriteFile(userConfigPath, embeddedConfig, 0644)
			if writeErr != nil {
				log.Printf("Warning: could not write default config to %s: %v", userConfigPath, writeErr)
			} else {
				log.Printf("Created default config file at %s", userConfigPath)
			}
		}
	}

	err = yaml.Unmarshal(buf, c)
	if err != nil {
		return nil, fmt.Errorf("in config file: %w", err)
	}

	envApiBaseUrl := os.Getenv("SIMPLEWALLS_APIBASEURL")
	envDatabaseFile := os.Getenv("SIMPLEWALLS_DATABASEFILE")
	envPopupSeconds := os.Getenv("SIMPLEWALLS_POPUPSECONDS")

	if envApiBaseUrl != "" {
		c.Conf.ApiBaseUrl = envApiBaseUrl
	}

	if envDatabaseFile != "" {
		c.Conf.DatabaseFile = envDatabaseFile
	}

	if envPopupSeconds != "" {
		v, err := strconv.Atoi(envPopupSeconds)
		if err != nil {
			fmt.Println(err)
		}
		c.Conf.PopupSeconds = v
	}

	if c.Conf.PopupSeconds <= 0 {
		c.Conf.PopupSeconds = 5
	}

	if err := validateBaseUrl(c.Conf.ApiBaseUrl); err != nil {
		return nil, err
	}

	return c, nil
}

// validateBaseUrl rejects base URLs the route builder cannot work with.
// Plain http is only accepted for loopback hosts, the wall server lives
// behind TLS everywhere else.
func validateBaseUrl(base string) error {
	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("apiBaseUrl is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("apiBaseUrl must use http or https, got %q", base)
	}
	if u.Host == "" {
		return fmt.Errorf("apiBaseUrl is missing a host: %q", base)
	}
	if u.Scheme == "http" {
		host := u.Hostname()
		if host != "localhost" && host != "127.0.0.1" && host != "::1" {
			return fmt.Errorf("refusing plain http for non-local host %q, use https", host)
		}
	}
	if strings.HasSuffix(u.Path, "/") {
		return fmt.Errorf("apiBaseUrl must not end with a slash: %q", base)
	}
	return nil
}
