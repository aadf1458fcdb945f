package providers

import (
	"time"

	"fittrack/internal/services"
	"fittrack/internal/structures"
)

// LoadLocation resolves a configured timezone name. Empty and "Local" both mean
// the host zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func NewClockProvider(conf *structures.Config) (services.Clock, error) {
	loc, err := LoadLocation(conf.Timezone)
	if err != nil {
		return nil, err
	}
	return services.NewSystemClock(loc), nil
}
