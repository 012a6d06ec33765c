package commands

import (
	"errors"
	"fmt"
	"os"
	"storygraph-backend/internal/scrapers/storygraph"
	"storygraph-backend/lib/configutil"
	"time"
)

const (
	envUsername      = "STORYGRAPH_USERNAME"
	envSession       = "_STORYGRAPH_SESSION"
	envRememberToken = "REMEMBER_USER_TOKEN"

	cookieSession       = "_storygraph_session"
	cookieRememberToken = "remember_user_token"
)

type CrawlConfig struct {
	// MaxPages bounds every paginated crawl, 0 disables the bound. Defaults to
	// 1000 when unset.
	MaxPages *int `json:"max_pages"`
}

type StoreConfig struct {
	// Driver is one of "sqlite", "libsql" or "mongo".
	Driver     string `json:"driver"`
	Dsn        string `json:"dsn"`
	AuthToken  string `json:"auth_token"`
	Database   string `json:"database"`
	Collection string `json:"collection"`
}

type Config struct {
	BaseUrl    string            `json:"base_url"`
	Username   string            `json:"username"`
	Cookies    map[string]string `json:"cookies"`
	TimeoutSec int               `json:"timeout_sec"`
	Crawl      CrawlConfig       `json:"crawl"`
	Store      StoreConfig       `json:"store"`
}

func (c Config) maxPages() int {
	if c.Crawl.MaxPages == nil {
		return storygraph.DefaultMaxPages
	}
	return *c.Crawl.MaxPages
}

func (c Config) timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// readConfig reads the json5 config (a missing file means defaults) and then
// applies secrets from the environment and .env.
func readConfig(path string) (Config, error) {
	config, err := configutil.ReadConfig[Config](path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	err = configutil.LoadEnv()
	if err != nil {
		return Config{}, err
	}

	if config.Cookies == nil {
		config.Cookies = map[string]string{}
	}
	configutil.Override(&config.Username, envUsername)
	session := config.Cookies[cookieSession]
	configutil.Override(&session, envSession)
	rememberToken := config.Cookies[cookieRememberToken]
	configutil.Override(&rememberToken, envRememberToken)
	if session != "" {
		config.Cookies[cookieSession] = session
	}
	if rememberToken != "" {
		config.Cookies[cookieRememberToken] = rememberToken
	}

	if config.maxPages() < 0 {
		return Config{}, fmt.Errorf("crawl.max_pages must not be negative")
	}
	if config.Store.Driver == "" {
		config.Store.Driver = "sqlite"
	}
	if config.Store.Dsn == "" && config.Store.Driver == "sqlite" {
		config.Store.Dsn = "notes.db"
	}
	return config, nil
}
