package bench

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/aacfactory/errors"
	"github.com/aacfactory/sortedlist"
	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrVerifyFailed = fmt.Errorf("verify failed")
)

type Result struct {
	Length     int
	Elements   int
	Rounds     int
	Mean       time.Duration
	Median     time.Duration
	P95        time.Duration
	Max        time.Duration
	Throughput float64
	Depth      int
	Digest     uint64
}

func NewRunner(config Config, log *logrus.Logger) (runner *Runner, err error) {
	if err = config.Validate(); err != nil {
		err = errors.ServiceError("create bench runner failed").WithCause(err)
		return
	}
	order, _ := sortedlist.ParseOrder(config.Order)
	if log == nil {
		log = logrus.New()
	}
	runner = &Runner{
		config: config,
		order:  order,
		log:    log,
	}
	return
}

// Runner measures random insertion of -n..n into fresh lists, one run per configured length.
// Lists are never shared between goroutines.
type Runner struct {
	config Config
	order  sortedlist.Order
	log    *logrus.Logger
}

func (runner *Runner) Run(ctx context.Context) (results []Result, err error) {
	lengths := runner.config.Lengths()
	results = make([]Result, len(lengths))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runner.config.Parallel)
	for i, length := range lengths {
		i, length := i, length
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			result, measureErr := runner.measure(groupCtx, length)
			if measureErr != nil {
				return measureErr
			}
			results[i] = result
			return nil
		})
	}
	if waitErr := group.Wait(); waitErr != nil {
		results = nil
		err = errors.ServiceError("bench run failed").WithCause(waitErr)
		return
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		results = nil
		err = errors.ServiceError("bench run failed").WithCause(ctxErr)
		return
	}
	return
}

func (runner *Runner) measure(ctx context.Context, length int) (result Result, err error) {
	rnd := rand.New(rand.NewSource(runner.config.Seed + int64(length)))
	input := make([]int64, 0, 2*length)
	for i := -length; i < length; i++ {
		input = append(input, int64(i))
	}
	durations := make(stats.Float64Data, 0, runner.config.Rounds)
	var list *sortedlist.List[int64]
	for round := 0; round < runner.config.Rounds; round++ {
		if err = ctx.Err(); err != nil {
			return
		}
		if runner.config.Shuffle {
			rnd.Shuffle(len(input), func(i, j int) {
				input[i], input[j] = input[j], input[i]
			})
		}
		list = sortedlist.New[int64](runner.order, sortedlist.WithBucketBand(runner.config.BandLow, runner.config.BandHigh))
		start := time.Now()
		for _, value := range input {
			if _, insertErr := list.Insert(value); insertErr != nil {
				err = errors.ServiceError("bench insert failed").WithCause(insertErr).WithMeta("length", strconv.Itoa(length))
				return
			}
		}
		durations = append(durations, float64(time.Since(start)))
	}
	if runner.config.Verify {
		if err = verify(list, runner.order, len(input)); err != nil {
			err = errors.ServiceError("bench verify failed").WithCause(err).WithMeta("length", strconv.Itoa(length))
			return
		}
	}
	digest, digestErr := sortedlist.Digest(list, sortedlist.Int64Encoder())
	if digestErr != nil {
		err = errors.ServiceError("bench digest failed").WithCause(digestErr).WithMeta("length", strconv.Itoa(length))
		return
	}
	mean, _ := stats.Mean(durations)
	median, _ := stats.Median(durations)
	maximum, _ := stats.Max(durations)
	p95, percentileErr := stats.Percentile(durations, 95)
	if percentileErr != nil {
		p95 = maximum
	}
	result = Result{
		Length:   length,
		Elements: len(input),
		Rounds:   runner.config.Rounds,
		Mean:     time.Duration(mean),
		Median:   time.Duration(median),
		P95:      time.Duration(p95),
		Max:      time.Duration(maximum),
		Depth:    list.Depth(),
		Digest:   digest,
	}
	if mean > 0 {
		result.Throughput = float64(len(input)) / time.Duration(mean).Seconds()
	}
	runner.log.WithFields(logrus.Fields{
		"length":     length,
		"elements":   result.Elements,
		"mean":       result.Mean,
		"p95":        result.P95,
		"throughput": fmt.Sprintf("%.0f/s", result.Throughput),
		"depth":      result.Depth,
	}).Info("bench length finished")
	return
}

func verify(list *sortedlist.List[int64], order sortedlist.Order, expect int) (err error) {
	if list.Len() != expect {
		err = errors.ServiceError(fmt.Sprintf("expect %d elements, got %d", expect, list.Len())).WithCause(ErrVerifyFailed)
		return
	}
	it := list.Iter()
	prev, _ := it.Next()
	for rank := 1; ; rank++ {
		value, ok := it.Next()
		if !ok {
			break
		}
		if (order == sortedlist.Ascending && value <= prev) || (order == sortedlist.Descending && value >= prev) {
			err = errors.ServiceError(fmt.Sprintf("element %d out of order at rank %d", value, rank)).WithCause(ErrVerifyFailed)
			return
		}
		prev = value
	}
	return
}
