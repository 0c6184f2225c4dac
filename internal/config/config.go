package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-yaml/yaml"
)

type Config struct {
	API    API    `yaml:"api"`
	Cache  Cache  `yaml:"cache"`
	Trace  Trace  `yaml:"trace"`
	Signal Signal `yaml:"signal"`
}

type API struct {
	URL       string        `yaml:"url"`
	Key       string        `yaml:"key"`
	UserAgent string        `yaml:"userAgent"`
	Timeout   time.Duration `yaml:"timeout"`
	Strict    bool          `yaml:"strictIdentifiers"`
}

type Cache struct {
	Backend       string        `yaml:"backend"` // memory, sharded, redis, memcached, none
	TTL           time.Duration `yaml:"ttl"`
	Capacity      int           `yaml:"capacity"`
	RedisAddr     string        `yaml:"redisAddr"`
	RedisPassword string        `yaml:"redisPassword"`
	RedisDB       int           `yaml:"redisDB"`
	MemcachedAddr string        `yaml:"memcachedAddr"`
}

type Trace struct {
	Enable   bool   `yaml:"enable"`
	Endpoint string `yaml:"endpoint"`
}

type Signal struct {
	RedisChannel string `yaml:"redisChannel"`
	Source       string `yaml:"source"`
}

const (
	BackendMemory    = "memory"
	BackendSharded   = "sharded"
	BackendRedis     = "redis"
	BackendMemcached = "memcached"
	BackendNone      = "none"
)

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	config.applyDefaults()

	err = config.validate()
	if err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendMemory
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = time.Minute
	}
	if c.Signal.Source == "" {
		c.Signal.Source, _ = os.Hostname()
	}
}

func (c Config) validate() error {
	if c.API.URL == "" {
		return fmt.Errorf("api.url is required")
	}
	switch c.Cache.Backend {
	case BackendMemory, BackendNone:
	case BackendSharded:
		if c.Cache.Capacity <= 0 {
			return fmt.Errorf("cache.capacity is required for the sharded backend")
		}
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redisAddr is required for the redis backend")
		}
	case BackendMemcached:
		if c.Cache.MemcachedAddr == "" {
			return fmt.Errorf("cache.memcachedAddr is required for the memcached backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Signal.RedisChannel != "" && c.Cache.RedisAddr == "" {
		return fmt.Errorf("signal.redisChannel requires cache.redisAddr")
	}
	return nil
}
