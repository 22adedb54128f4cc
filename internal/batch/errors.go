package batch

import (
	"fmt"
	"time"
)

// InvalidDateRangeError means a requested range can never contain games:
// inverted bounds or a start date in the future.
type InvalidDateRangeError struct {
	Start  time.Time
	End    time.Time
	Reason string
}

func (e *InvalidDateRangeError) Error() string {
	return fmt.Sprintf("invalid date range %s to %s: %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"), e.Reason)
}

// BatchError means a batch attempted games and every one of them failed.
// Partial failures are not errors; they are logged and the survivors
// returned.
type BatchError struct {
	Total  int
	Failed int
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("all %d of %d games failed to scrape", e.Failed, e.Total)
}
