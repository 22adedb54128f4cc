package espn

import "fmt"

// PageKind names the page variants the parser understands. It travels with
// ParseError so callers can tell which extraction failed for a game.
type PageKind string

const (
	KindGameInfo   PageKind = "game info"
	KindBoxscore   PageKind = "boxscore"
	KindPlayByPlay PageKind = "play-by-play"
	KindPlayer     PageKind = "player"
	KindSchedule   PageKind = "schedule"
	KindScoreboard PageKind = "scoreboard"
)

// ParseError means a page's top-level structure was unrecognized for the
// requested kind: no embedded state payload, or the payload is missing the
// section the kind requires. It is not retryable; the caller decides whether
// it is fatal.
type ParseError struct {
	ID     string
	Kind   PageKind
	Reason string
}

func (e *ParseError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("parsing %s page: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("parsing %s page for %s: %s", e.Kind, e.ID, e.Reason)
}
