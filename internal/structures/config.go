package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

type Persistence struct {
	Driver       string        `yaml:"driver" validate:"required|in:file,redis"`
	FilePath     string        `yaml:"filePath" validate:"unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
	Redis        RedisConfig   `yaml:"redis"`
}

type LoggerConfig struct {
	Level    string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Dir      string `yaml:"dir" validate:"required|unixPath"`
	MaxSize  int    `yaml:"maxSize"`
	Compress bool   `yaml:"compress"`
}

// GoalConfig seeds the program goal. StartDate is "2006-01-02"; when empty the
// start date recorded in the last snapshot is used, otherwise today.
type GoalConfig struct {
	Baseline   float64 `yaml:"baseline" validate:"required"`
	Target     float64 `yaml:"target" validate:"required"`
	LengthDays int     `yaml:"lengthDays" validate:"required|int|min:1"`
	StartDate  string  `yaml:"startDate"`
	MinWeight  float64 `yaml:"minWeight" validate:"required"`
	MaxWeight  float64 `yaml:"maxWeight" validate:"required"`
}

type CatalogConfig struct {
	Path string `yaml:"path"`
}

type RemindersConfig struct {
	Enabled bool   `yaml:"enabled"`
	Spec    string `yaml:"spec"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Timezone    string          `yaml:"timezone"`
	Goal        GoalConfig      `yaml:"goal"`
	Catalog     CatalogConfig   `yaml:"catalog"`
	WebServer   Server          `yaml:"webServer"`
	Persistence Persistence     `yaml:"persistence"`
	Reminders   RemindersConfig `yaml:"reminders"`
	Logger      LoggerConfig    `yaml:"logger"`
	Cache       CacheConfig     `yaml:"cache"`
	Metrics     MetricsConfig   `yaml:"metrics"`
}
