// internal/logging/logging.go

package logging

import (
	"flag"
	"fmt"
	"time"

	"github.com/golang/glog"
)

// Init points glog at its log files and raises verbosity when asked.
// Stdout stays reserved for timing output and stderr for the messages the
// command prints itself, so nothing short of a fatal error is echoed there.
func Init(verbose bool) {
	flag.Set("logtostderr", "false")
	flag.Set("alsologtostderr", "false")
	flag.Set("stderrthreshold", "FATAL")
	if verbose {
		flag.Set("v", "1")
	}
}

func Infof(format string, args ...interface{}) {
	glog.Infof(format, args...)
}

func Warningf(format string, args ...interface{}) {
	glog.Warningf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	glog.Errorf(format, args...)
}

// Debugf only logs at -v=1 and above.
func Debugf(format string, args ...interface{}) {
	glog.V(1).Infof(format, args...)
}

// Since logs how long ago start was, followed by the message.
func Since(start time.Time, format string, args ...interface{}) {
	Debugf("[%.3fs] %s", time.Since(start).Seconds(), fmt.Sprintf(format, args...))
}

func Flush() {
	glog.Flush()
}
