package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
)

// progressReporter renders batch progress as a terminal bar. It goes to
// stderr so CSV and JSON output stay pipeable.
type progressReporter struct {
	bar   *pb.ProgressBar
	start time.Time
}

func newProgressReporter() *progressReporter {
	return &progressReporter{}
}

func (r *progressReporter) OnBatchStart(total int) {
	r.start = time.Now()
	r.bar = pb.Full.Start(total)
	r.bar.SetWriter(os.Stderr)
}

func (r *progressReporter) OnGameDone(gameID string, err error) {
	if r.bar != nil {
		r.bar.Increment()
	}
}

func (r *progressReporter) OnProgress(message string, current, total int) {
	// Only the id-listing phase reports here, before the bar exists.
	if r.bar == nil {
		fmt.Fprintf(os.Stderr, "%s (%d/%d)\n", message, current, total)
	}
}

func (r *progressReporter) OnBatchComplete() {
	if r.bar == nil {
		return
	}
	r.bar.Finish()
	fmt.Fprintf(os.Stderr, "done, %s\n", humanize.RelTime(r.start, time.Now(), "elapsed", ""))
}
