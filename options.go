package sortedlist

import (
	"fmt"
)

const (
	Ascending = Order(iota + 1)
	Descending
)

type Order int

func (order Order) String() string {
	switch order {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return fmt.Sprintf("Unknown(%d)", order)
	}
}

func ParseOrder(s string) (order Order, err error) {
	switch s {
	case "asc", "ascending":
		order = Ascending
	case "desc", "descending":
		order = Descending
	default:
		err = fmt.Errorf("invalid order %q", s)
	}
	return
}

const (
	defaultExpandThreshold = 2000
	defaultShrinkThreshold = 500
)

// Strategy decides, from the length of a bucket and its position in the
// bucket sequence, whether the bucket must be rebalanced.
type Strategy func(length int, position int) bool

func DefaultExpandStrategy(length int, _ int) bool {
	return length > defaultExpandThreshold
}

func DefaultShrinkStrategy(length int, _ int) bool {
	return length < defaultShrinkThreshold
}

type Option func(options *Options)

func WithExpandStrategy(strategy Strategy) Option {
	return func(options *Options) {
		options.ExpandStrategy = strategy
	}
}

func WithShrinkStrategy(strategy Strategy) Option {
	return func(options *Options) {
		options.ShrinkStrategy = strategy
	}
}

// WithBucketBand keeps buckets between low and high elements:
// a bucket splits once longer than high and merges once shorter than low.
func WithBucketBand(low int, high int) Option {
	return func(options *Options) {
		options.ExpandStrategy = func(length int, _ int) bool {
			return length > high
		}
		options.ShrinkStrategy = func(length int, _ int) bool {
			return length < low
		}
	}
}

type Options struct {
	ExpandStrategy Strategy
	ShrinkStrategy Strategy
}
