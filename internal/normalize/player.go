package normalize

import (
	"time"

	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/records"
)

var dobLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	"January 2, 2006",
}

// Player builds a bio row from a parsed player page. Pros keep the league
// label as their experience and their college team as their team; jersey
// numbers only exist for college players.
func Player(frag *espn.PlayerFragment, playerID string, league espn.League) records.PlayerInfo {
	info := records.PlayerInfo{
		PlayerID:     playerID,
		FirstName:    frag.FirstName,
		LastName:     frag.LastName,
		JerseyNumber: frag.JerseyNumber,
		Position:     frag.Position,
		Status:       frag.Status,
		Team:         frag.Team,
		Experience:   frag.Experience,
		Height:       frag.Height,
		Weight:       frag.Weight,
		Birthplace:   frag.Birthplace,
	}
	if info.Status == "" {
		info.Status = records.StatusNA
	}

	if frag.Pro {
		na := "N/A"
		league := proLeague(league)
		info.JerseyNumber = &na
		info.Experience = &league
		info.Team = frag.CollegeTeam
	}

	if frag.DateOfBirth != nil {
		if dob, ok := parseDOB(*frag.DateOfBirth); ok {
			formatted := dob.Format("2006-01-02")
			info.DateOfBirth = &formatted
		}
	}
	return info
}

func proLeague(league espn.League) string {
	if league == espn.Womens {
		return "WNBA"
	}
	return "NBA"
}

func parseDOB(s string) (time.Time, bool) {
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
