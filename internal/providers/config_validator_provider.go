package providers

import (
	"fmt"
	"time"

	"github.com/gookit/validate"
	"go.uber.org/multierr"

	"fittrack/internal/models"
	"fittrack/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate runs the struct tag rules first, then the cross-field checks that
// tags cannot express. All cross-field failures are reported together.
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("%w: %s", models.ErrInvalidConfig, v.Errors.One())
	}

	var err error
	p := cv.conf.Persistence
	if p.Driver == "file" && p.FilePath == "" {
		err = multierr.Append(err, fmt.Errorf("persistence.filePath is required for the file driver"))
	}
	if p.Driver == "redis" && p.Redis.Addr == "" {
		err = multierr.Append(err, fmt.Errorf("persistence.redis.addr is required for the redis driver"))
	}

	g := cv.conf.Goal
	if g.MinWeight >= g.MaxWeight {
		err = multierr.Append(err, fmt.Errorf("goal.minWeight must be below goal.maxWeight"))
	}
	if g.Target >= g.Baseline {
		err = multierr.Append(err, fmt.Errorf("goal.target must be below goal.baseline"))
	}
	if g.StartDate != "" {
		if _, perr := models.ParseDate(g.StartDate, time.UTC); perr != nil {
			err = multierr.Append(err, fmt.Errorf("goal.startDate: %w", perr))
		}
	}

	if _, lerr := LoadLocation(cv.conf.Timezone); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("timezone: %w", lerr))
	}

	if err != nil {
		return fmt.Errorf("%w: %s", models.ErrInvalidConfig, err)
	}
	return nil
}
