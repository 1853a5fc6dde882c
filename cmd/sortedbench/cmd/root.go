package cmd

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/aacfactory/errors"
	"github.com/aacfactory/sortedlist"
	"github.com/aacfactory/sortedlist/internal/bench"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	log = logrus.New()

	cfgFile string
	v       = viper.New()
)

var rootDescription = `sortedbench measures random insertion into sortedlist collections.
For every length n from --from up to --to, then from --to through --upper-to,
it inserts the shuffled range -n..n into a fresh list, repeats it --rounds times
and reports duration statistics, throughput, bucket depth and the digest of the
resulting list.`

var rootCmd = &cobra.Command{
	Use:               "sortedbench",
	Short:             "benchmark sortedlist insertion",
	Long:              rootDescription,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
		}
		config, err := bench.LoadConfig(v)
		if err != nil {
			return err
		}
		setupLogging(config)
		return runBench(cmd.Context(), config)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Errorf("Execute error: %s", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (yaml, json or toml)")
	flags.Int("from", 10_000, "first half length n, the list receives 2n elements")
	flags.Int("to", 100_000, "end of the first series, exclusive")
	flags.Int("step", 10_000, "half length increment")
	flags.Int("upper-to", 1_000_000, "end of the upper series starting at --to, inclusive, 0 disables it")
	flags.Int("upper-step", 100_000, "half length increment of the upper series")
	flags.String("order", sortedlist.Ascending.String(), "order of the lists, asc or desc")
	flags.Bool("shuffle", true, "shuffle the input of every round")
	flags.Int("rounds", 3, "rounds per length")
	flags.Int("parallel", runtime.NumCPU(), "lengths measured concurrently")
	flags.Int64("seed", 1, "seed of the input shuffling")
	flags.Int("band-low", 500, "buckets shorter than this are merged")
	flags.Int("band-high", 2000, "buckets longer than this are split")
	flags.Bool("verify", true, "verify order and length of every resulting list")
	flags.String("log-level", logrus.InfoLevel.String(), "log level")
	bindFlags(flags)

	v.SetEnvPrefix("sortedbench")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

func bindFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name == "config" {
			return
		}
		if err := v.BindPFlag(flag.Name, flag); err != nil {
			log.Fatalf("bind flag %s failed: %s", flag.Name, err)
		}
	})
}

func setupLogging(config bench.Config) {
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	sortedlist.Log.SetLevel(level)
	sortedlist.Log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
}

func runBench(ctx context.Context, config bench.Config) (err error) {
	runner, err := bench.NewRunner(config, log)
	if err != nil {
		return
	}
	log.WithFields(logrus.Fields{
		"lengths":  len(config.Lengths()),
		"order":    config.Order,
		"rounds":   config.Rounds,
		"parallel": config.Parallel,
	}).Info("bench started")
	results, runErr := runner.Run(ctx)
	if runErr != nil {
		if errors.Map(runErr).Contains(bench.ErrVerifyFailed) {
			log.Error("resulting list is corrupted")
		}
		err = runErr
		return
	}
	for _, result := range results {
		log.WithFields(logrus.Fields{
			"elements":   result.Elements,
			"mean":       result.Mean,
			"median":     result.Median,
			"p95":        result.P95,
			"max":        result.Max,
			"throughput": int64(result.Throughput),
			"depth":      result.Depth,
			"digest":     result.Digest,
		}).Infof("n=%d", result.Length)
	}
	return
}
