package normalize

import (
	"log"
	"regexp"
	"strings"

	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/records"
)

var nonSlugChars = regexp.MustCompile(`[^0-9a-zA-Z-]`)

// GameInfo builds the game metadata row from a parsed gamepackage.
func GameInfo(pkg *espn.GamePackage, league espn.League) records.GameInfo {
	info := records.GameInfo{
		GameID:          pkg.GameID,
		GameStatus:      pkg.Status,
		HomeTeam:        pkg.Home.DisplayName,
		HomeID:          teamID(pkg.Home),
		HomeRank:        pkg.Home.Rank,
		HomeRecord:      pkg.Home.Record,
		HomeScore:       pkg.Home.Score,
		AwayTeam:        pkg.Away.DisplayName,
		AwayID:          teamID(pkg.Away),
		AwayRank:        pkg.Away.Rank,
		AwayRecord:      pkg.Away.Record,
		AwayScore:       pkg.Away.Score,
		IsConference:    pkg.IsConference,
		IsNeutral:       pkg.IsNeutral,
		IsPostseason:    pkg.SeasonType == 3,
		Tournament:      pkg.Tournament,
		GameLoc:         pkg.Location,
		Arena:           pkg.Arena,
		ArenaCapacity:   pkg.Capacity,
		Attendance:      pkg.Attendance,
		TVNetwork:       pkg.Network,
		HomePointSpread: pkg.HomeSpread,
	}

	if pkg.Home.Score != nil && pkg.Away.Score != nil {
		info.HomeWin = *pkg.Home.Score > *pkg.Away.Score && pkg.Status == records.StatusFinal
	}

	if pkg.HasTipoff {
		day, tip := formatDay(pkg.Tipoff), formatTime(pkg.Tipoff)
		info.GameDay, info.GameTime = &day, &tip
	}

	info.NumOTs = numOvertimes(pkg, league)

	refs := make([]*string, 3)
	for i := range refs {
		if i < len(pkg.Referees) {
			refs[i] = &pkg.Referees[i]
		}
	}
	info.Referee1, info.Referee2, info.Referee3 = refs[0], refs[1], refs[2]

	return info
}

// numOvertimes derives overtime count from linescore length: one entry per
// period, so anything beyond regulation is overtime. -1 means the payload
// carried no usable score breakdown.
func numOvertimes(pkg *espn.GamePackage, league espn.League) int {
	if !pkg.Home.HasLine || !pkg.Away.HasLine {
		log.Printf("[normalize] ⚠️ %s - no score info available", pkg.GameID)
		return -1
	}

	reg := regulationPeriods(periodType(league, pkg.Tipoff))
	homeOT := pkg.Home.Linescores - reg
	awayOT := pkg.Away.Linescores - reg
	if homeOT != awayOT || homeOT < 0 {
		log.Printf("[normalize] ⚠️ %s - inconsistent linescores (home %d, away %d periods)",
			pkg.GameID, pkg.Home.Linescores, pkg.Away.Linescores)
		return -1
	}
	return homeOT
}

// teamID is the site id when the team carries one, or a synthetic slug id
// for non-D1 opponents the site lists without links or records.
func teamID(t espn.TeamFragment) string {
	if t.HasLinks && t.HasRecords && t.ID != "" {
		return t.ID
	}
	slug := strings.ReplaceAll(strings.ToLower(t.DisplayName), " ", "-")
	return "nd-" + nonSlugChars.ReplaceAllString(slug, "")
}
