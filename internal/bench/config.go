package bench

import (
	"runtime"

	"github.com/aacfactory/errors"
	"github.com/aacfactory/sortedlist"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	From      int    `mapstructure:"from"`
	To        int    `mapstructure:"to"`
	Step      int    `mapstructure:"step"`
	UpperTo   int    `mapstructure:"upper-to"`
	UpperStep int    `mapstructure:"upper-step"`
	Order     string `mapstructure:"order"`
	Shuffle   bool   `mapstructure:"shuffle"`
	Rounds    int    `mapstructure:"rounds"`
	Parallel  int    `mapstructure:"parallel"`
	Seed      int64  `mapstructure:"seed"`
	BandLow   int    `mapstructure:"band-low"`
	BandHigh  int    `mapstructure:"band-high"`
	Verify    bool   `mapstructure:"verify"`
	LogLevel  string `mapstructure:"log-level"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("from", 10_000)
	v.SetDefault("to", 100_000)
	v.SetDefault("step", 10_000)
	v.SetDefault("upper-to", 1_000_000)
	v.SetDefault("upper-step", 100_000)
	v.SetDefault("order", sortedlist.Ascending.String())
	v.SetDefault("shuffle", true)
	v.SetDefault("rounds", 3)
	v.SetDefault("parallel", runtime.NumCPU())
	v.SetDefault("seed", 1)
	v.SetDefault("band-low", 500)
	v.SetDefault("band-high", 2000)
	v.SetDefault("verify", true)
	v.SetDefault("log-level", logrus.InfoLevel.String())
}

// LoadConfig merges defaults, the optional config file, environment and bound flags of v.
func LoadConfig(v *viper.Viper) (config Config, err error) {
	SetDefaults(v)
	if v.ConfigFileUsed() != "" {
		if readErr := v.ReadInConfig(); readErr != nil {
			err = errors.ServiceError("load bench config failed").WithCause(readErr).WithMeta("file", v.ConfigFileUsed())
			return
		}
	}
	if decodeErr := v.Unmarshal(&config); decodeErr != nil {
		err = errors.ServiceError("load bench config failed").WithCause(decodeErr)
		return
	}
	err = config.Validate()
	return
}

func (config Config) Validate() (err error) {
	var cause error
	switch {
	case config.From < 1:
		cause = errors.ServiceError("from must be positive")
	case config.To <= config.From:
		cause = errors.ServiceError("to must be greater than from")
	case config.Step < 1:
		cause = errors.ServiceError("step must be positive")
	case config.UpperTo < 0 || (config.UpperTo > 0 && config.UpperTo < config.To):
		cause = errors.ServiceError("upper-to must be zero or not less than to")
	case config.UpperTo > 0 && config.UpperStep < 1:
		cause = errors.ServiceError("upper-step must be positive")
	case config.Rounds < 1:
		cause = errors.ServiceError("rounds must be positive")
	case config.Parallel < 1:
		cause = errors.ServiceError("parallel must be positive")
	case config.BandLow < 0 || config.BandHigh < 2 || config.BandLow > config.BandHigh:
		cause = errors.ServiceError("invalid bucket band")
	}
	if cause == nil {
		if _, orderErr := sortedlist.ParseOrder(config.Order); orderErr != nil {
			cause = orderErr
		}
	}
	if cause == nil {
		if _, levelErr := logrus.ParseLevel(config.LogLevel); levelErr != nil {
			cause = levelErr
		}
	}
	if cause != nil {
		err = errors.ServiceError("invalid bench config").WithCause(cause)
	}
	return
}

// Lengths returns the half lengths to measure: From up to To exclusive by Step,
// then To up to UpperTo inclusive by UpperStep when UpperTo is set.
func (config Config) Lengths() (lengths []int) {
	for n := config.From; n < config.To; n += config.Step {
		lengths = append(lengths, n)
	}
	if config.UpperTo == 0 {
		return
	}
	for n := config.To; n <= config.UpperTo; n += config.UpperStep {
		lengths = append(lengths, n)
	}
	return
}
