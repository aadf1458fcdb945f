package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"fittrack/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("timezone", "Local")
	v.SetDefault("persistence.driver", "file")
	v.SetDefault("persistence.saveInterval", 30*time.Second)
	v.SetDefault("persistence.redis.key", "fittrack:progress")
	v.SetDefault("reminders.spec", "* * * * *")
	v.SetDefault("logger.maxSize", 50)
	v.SetDefault("cache.ttl", 10*time.Minute)

	v.BindEnv("logger.level", "FITTRACK_LOG_LEVEL")
	v.BindEnv("persistence.saveInterval", "FITTRACK_SAVE_INTERVAL")
	v.BindEnv("persistence.driver", "FITTRACK_PERSISTENCE_DRIVER")
	v.BindEnv("persistence.redis.addr", "FITTRACK_REDIS_ADDR")
	v.BindEnv("catalog.path", "FITTRACK_CATALOG_PATH")
	v.BindEnv("timezone", "FITTRACK_TIMEZONE")
	v.BindEnv("cache.enabled", "FITTRACK_CACHE_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "FitTrack"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
