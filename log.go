package sortedlist

import (
	"github.com/sirupsen/logrus"
)

// Log receives rebalancing events at debug level.
var Log = logrus.New()

func debugEnabled() bool {
	return Log.IsLevelEnabled(logrus.DebugLevel)
}
