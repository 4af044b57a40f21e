package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL     = "http://localhost:5000"
	DefaultDBURI      = "mongodb://localhost:27017"
	DefaultDBName     = "hookah"
	DefaultCollection = "tobaccos"
	DefaultListenAddr = ":5000"
	DefaultTUILogFile = "tobacco-form.log"
)

type Config struct {
	APIURL     string
	DBURI      string
	DBName     string
	Collection string
	ListenAddr string
	LogFile    string
	Debug      bool
}

func Default() Config {
	return Config{
		APIURL:     DefaultAPIURL,
		DBURI:      DefaultDBURI,
		DBName:     DefaultDBName,
		Collection: DefaultCollection,
		ListenAddr: DefaultListenAddr,
	}
}

// Load reads an optional .env file and applies environment overrides on top
// of the defaults. A missing .env file is not an error.
func Load(envFiles ...string) (Config, error) {
	cfg := Default()
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return cfg, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func (c *Config) ApplyEnv() {
	if v := os.Getenv("TOBACCO_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("DB_URI"); v != "" {
		c.DBURI = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.DBName = v
	}
	if v := os.Getenv("DB_COLLECTION"); v != "" {
		c.Collection = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("TOBACCO_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("TOBACCO_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		c.Debug = err == nil && debug
	}
}
