package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
)

type procedureFile struct {
	Name    string `mapstructure:"name"`
	Minutes int    `mapstructure:"minutes"`
}

type hoursFile struct {
	Open  string `mapstructure:"open"`
	Close string `mapstructure:"close"`
}

type scheduleFile struct {
	Step            time.Duration        `mapstructure:"step"`
	DaysLookahead   int                  `mapstructure:"days_lookahead"`
	MonthsLookahead int                  `mapstructure:"months_lookahead"`
	Procedures      []procedureFile      `mapstructure:"procedures"`
	Weekly          map[string]hoursFile `mapstructure:"weekly_schedule"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// LoadScheduling reads an optional YAML file; every key falls back to the
// built-in business defaults. Env vars SCHEDULE_STEP, SCHEDULE_DAYS_LOOKAHEAD
// and SCHEDULE_MONTHS_LOOKAHEAD override the file.
func LoadScheduling(path string) (*schedule.Rules, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("schedule")
	v.AutomaticEnv()

	defaults := schedule.DefaultSettings()
	v.SetDefault("step", defaults.Step)
	v.SetDefault("days_lookahead", defaults.DaysLookahead)
	v.SetDefault("months_lookahead", defaults.MonthsLookahead)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read schedule config: %w", err)
			}
		}
	}

	var raw scheduleFile
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("decode schedule config: %w", err)
	}

	return buildScheduling(raw)
}

func buildScheduling(raw scheduleFile) (*schedule.Rules, error) {
	settings := schedule.Settings{
		Step:            raw.Step,
		DaysLookahead:   raw.DaysLookahead,
		MonthsLookahead: raw.MonthsLookahead,
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	catalog := schedule.DefaultCatalog()
	if len(raw.Procedures) > 0 {
		procs := make([]schedule.Procedure, 0, len(raw.Procedures))
		for _, p := range raw.Procedures {
			procs = append(procs, schedule.Procedure{Name: p.Name, Minutes: p.Minutes})
		}
		c, err := schedule.NewCatalog(procs)
		if err != nil {
			return nil, err
		}
		catalog = c
	}

	weekly := schedule.DefaultWeeklySchedule()
	if len(raw.Weekly) > 0 {
		rules := make(map[time.Weekday]schedule.Interval, len(raw.Weekly))
		for name, h := range raw.Weekly {
			wd, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
			if !ok {
				return nil, fmt.Errorf("unknown weekday %q", name)
			}
			// an empty entry keeps the day closed
			if h.Open == "" && h.Close == "" {
				continue
			}
			iv, err := schedule.ParseInterval(h.Open, h.Close)
			if err != nil {
				return nil, fmt.Errorf("weekday %s: %w", name, err)
			}
			rules[wd] = iv
		}
		ws, err := schedule.NewWeeklySchedule(rules)
		if err != nil {
			return nil, err
		}
		weekly = ws
	}

	return &schedule.Rules{
		Catalog:  catalog,
		Weekly:   weekly,
		Settings: settings,
	}, nil
}
