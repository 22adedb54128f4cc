// Package espn parses the site's embedded page-state payloads into typed
// fragments. It never touches the network; callers hand it raw markup.
package espn

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var gameIDRegex = regexp.MustCompile(`gameId/(\d+)/`)

// ParseGamePackage extracts the gamepackage section shared by the game,
// boxscore, and play-by-play pages. kind only labels the error when the
// page's structure is unrecognized.
func ParseGamePackage(markup, gameID string, kind PageKind) (*GamePackage, error) {
	state, ok := pageState(markup)
	if !ok {
		return nil, &ParseError{ID: gameID, Kind: kind, Reason: "state payload not found on page"}
	}

	gp := extractMap(pageContent(state), "gamepackage")
	if len(gp) == 0 {
		return nil, &ParseError{ID: gameID, Kind: kind, Reason: "gamepackage section missing"}
	}

	strip := extractMap(gp, "gmStrp")
	info := extractMap(gp, "gmInfo")

	pkg := &GamePackage{
		GameID:       gameID,
		Status:       extractString(extractMap(strip, "status"), "desc"),
		SeasonType:   extractInt(strip, "seasonType"),
		IsConference: extractBool(strip, "isConferenceGame"),
		Tournament:   extractStringPtr(strip, "nte"),
		Arena:        extractStringPtr(info, "loc"),
		Capacity:     extractIntPtr(info, "cpcty"),
		Attendance:   extractIntPtr(info, "attnd"),
		Network:      extractStringPtr(info, "cvrg"),
	}

	// The neutral-site flag is presence-only: the key exists or it doesn't.
	_, pkg.IsNeutral = strip["neutralSite"]

	tms := extractArray(strip, "tms")
	if len(tms) < 2 {
		return nil, &ParseError{ID: gameID, Kind: kind, Reason: "team strip missing or incomplete"}
	}
	for i, ti := range tms[:2] {
		t, _ := ti.(map[string]interface{})
		frag := parseTeamFragment(t)
		home := i == 0
		if ha := extractString(t, "homeAway"); ha != "" {
			home = ha == "home"
		}
		if home {
			pkg.Home = frag
		} else {
			pkg.Away = frag
		}
	}

	if dt := extractString(info, "dtTm"); dt != "" {
		if ts, ok := parseSiteTime(dt); ok {
			pkg.Tipoff = ts
			pkg.HasTipoff = true
		}
	}

	if addr := extractMap(info, "locAddr"); len(addr) > 0 {
		city, state := extractString(addr, "city"), extractString(addr, "state")
		if city != "" && state != "" {
			loc := city + ", " + state
			pkg.Location = &loc
		}
	}

	for _, ri := range extractArray(info, "refs") {
		ref, _ := ri.(map[string]interface{})
		if name := extractString(ref, "dspNm"); name != "" {
			pkg.Referees = append(pkg.Referees, name)
		}
	}

	// The header spread is the last (most recent) odds entry.
	if odds := extractArray(extractMap(gp, "gameOdds"), "odds"); len(odds) > 0 {
		last, _ := odds[len(odds)-1].(map[string]interface{})
		pkg.HomeSpread = extractStringPtr(extractMap(last, "pointSpread"), "primary")
	}

	if box := extractArray(gp, "bxscr"); len(box) >= 2 {
		for _, bi := range box[:2] {
			b, _ := bi.(map[string]interface{})
			pkg.Box = append(pkg.Box, parseTeamBox(b))
		}
	}

	if pbp := extractMap(gp, "pbp"); len(pbp) > 0 {
		pkg.PBP = parsePlayByPlay(pbp, extractMap(gp, "shtChrt"))
	}

	return pkg, nil
}

// ParseScoreboard extracts the games listed on a date's scoreboard page.
func ParseScoreboard(markup, date string) ([]ScoreboardEvent, error) {
	state, ok := pageState(markup)
	if !ok {
		return nil, &ParseError{ID: date, Kind: KindScoreboard, Reason: "state payload not found on page"}
	}

	sb := extractMap(pageContent(state), "scoreboard")
	if len(sb) == 0 {
		return nil, &ParseError{ID: date, Kind: KindScoreboard, Reason: "scoreboard section missing"}
	}

	var events []ScoreboardEvent
	for _, ei := range extractArray(sb, "evts") {
		ev, _ := ei.(map[string]interface{})
		id := extractString(ev, "id")
		if id == "" {
			if n, ok := coerceInt(ev["id"]); ok {
				id = strconv.Itoa(n)
			}
		}
		if id == "" {
			continue
		}

		event := ScoreboardEvent{
			ID:     id,
			Status: extractString(extractMap(ev, "status"), "desc"),
		}
		for i, ti := range extractArray(ev, "teams") {
			t, _ := ti.(map[string]interface{})
			home := i == 0
			if _, ok := t["isHome"]; ok {
				home = extractBool(t, "isHome")
			}
			if home {
				event.HomeTeam = extractString(t, "displayName")
				event.HomeScore = extractIntPtr(t, "score")
			} else {
				event.AwayTeam = extractString(t, "displayName")
				event.AwayScore = extractIntPtr(t, "score")
			}
		}
		events = append(events, event)
	}
	return events, nil
}

// ParseSchedule extracts a team's schedule page. Season-type groups come
// reversed so the regular season leads; events without a date are dropped.
func ParseSchedule(markup, teamID string) ([]ScheduleEvent, error) {
	state, ok := pageState(markup)
	if !ok {
		return nil, &ParseError{ID: teamID, Kind: KindSchedule, Reason: "state payload not found on page"}
	}

	groups := extractArray(extractMap(pageContent(state), "scheduleData"), "teamSchedule")
	if len(groups) == 0 {
		return nil, &ParseError{ID: teamID, Kind: KindSchedule, Reason: "teamSchedule section missing"}
	}

	var events []ScheduleEvent
	for i := len(groups) - 1; i >= 0; i-- {
		group, _ := groups[i].(map[string]interface{})
		evs := extractMap(group, "events")
		all := append(extractArray(evs, "pre"), extractArray(evs, "post")...)
		for _, ei := range all {
			ev, _ := ei.(map[string]interface{})
			if _, ok := ev["date"]; !ok {
				continue
			}
			events = append(events, parseScheduleEvent(ev))
		}
	}
	return events, nil
}

// ParsePlayer extracts a player bio page.
func ParsePlayer(markup, playerID string) (*PlayerFragment, error) {
	state, ok := pageState(markup)
	if !ok {
		return nil, &ParseError{ID: playerID, Kind: KindPlayer, Reason: "state payload not found on page"}
	}

	player := extractMap(pageContent(state), "player")
	if len(player) == 0 {
		return nil, &ParseError{ID: playerID, Kind: KindPlayer, Reason: "player section missing"}
	}

	ath := extractMap(extractMap(player, "plyrHdr"), "ath")
	common := extractMap(extractMap(player, "prtlCmnApiRsp"), "athlete")
	if len(ath) == 0 && len(common) == 0 {
		return nil, &ParseError{ID: playerID, Kind: KindPlayer, Reason: "player header blocks missing"}
	}

	frag := &PlayerFragment{
		FirstName:   extractStringPtr(ath, "fNm"),
		LastName:    extractStringPtr(ath, "lNm"),
		Position:    extractStringPtr(extractMap(ath, "position"), "displayName"),
		Status:      extractString(extractMap(common, "status"), "name"),
		Experience:  extractStringPtr(common, "displayExperience"),
		Height:      extractStringPtr(common, "displayHeight"),
		Weight:      extractStringPtr(common, "displayWeight"),
		Birthplace:  extractStringPtr(common, "displayBirthPlace"),
		DateOfBirth: extractStringPtr(common, "displayDOB"),
	}

	if num := extractString(ath, "dspNum"); num != "" {
		n := strings.TrimPrefix(num, "#")
		frag.JerseyNumber = &n
	}

	// A player with a college team on record is a pro; the bio's team block
	// then points at their pro club, not their college.
	if college := extractStringPtr(extractMap(common, "collegeTeam"), "displayName"); college != nil {
		frag.Pro = true
		frag.CollegeTeam = extractStringPtr(extractMap(common, "college"), "displayName")
		if frag.CollegeTeam == nil {
			frag.CollegeTeam = college
		}
	}
	frag.Team = extractStringPtr(extractMap(common, "team"), "displayName")

	return frag, nil
}

func parseTeamFragment(t map[string]interface{}) TeamFragment {
	frag := TeamFragment{
		DisplayName: extractString(t, "displayName"),
		Rank:        extractIntPtr(t, "rank"),
		Score:       extractIntPtr(t, "score"),
		HasLinks:    len(extractArray(t, "links")) > 0,
	}

	frag.ID = extractString(t, "id")
	if frag.ID == "" {
		if n, ok := coerceInt(t["id"]); ok {
			frag.ID = strconv.Itoa(n)
		}
	}

	if records := extractArray(t, "records"); len(records) > 0 {
		frag.HasRecords = true
		first, _ := records[0].(map[string]interface{})
		frag.Record = extractStringPtr(first, "displayValue")
	}

	if lines, ok := t["linescores"]; ok {
		if arr, ok := lines.([]interface{}); ok {
			frag.HasLine = true
			frag.Linescores = len(arr)
		}
	}
	return frag
}

func parseTeamBox(b map[string]interface{}) TeamBox {
	box := TeamBox{
		Team: extractString(extractMap(b, "tm"), "dspNm"),
	}

	stats := extractArray(b, "stats")
	if len(stats) > 0 {
		group, _ := stats[0].(map[string]interface{})
		for _, li := range extractArray(group, "lbls") {
			if label, ok := li.(string); ok {
				box.Labels = append(box.Labels, label)
			}
		}
		box.Starters = parsePlayerLines(group)
	}
	if len(stats) > 1 {
		group, _ := stats[1].(map[string]interface{})
		box.Bench = parsePlayerLines(group)
	}
	if len(stats) > 2 {
		group, _ := stats[2].(map[string]interface{})
		for _, ti := range extractArray(group, "ttls") {
			box.Totals = append(box.Totals, cellString(ti))
		}
	}
	return box
}

func parsePlayerLines(group map[string]interface{}) []PlayerLine {
	var lines []PlayerLine
	for _, ai := range extractArray(group, "athlts") {
		a, _ := ai.(map[string]interface{})
		athlete := extractMap(a, "athlt")

		line := PlayerLine{
			Name:     extractString(athlete, "shrtNm"),
			Position: extractString(athlete, "pos"),
		}
		// Player ids ride in the uid's last colon segment.
		if uid := extractString(athlete, "uid"); uid != "" {
			parts := strings.Split(uid, ":")
			line.ID = parts[len(parts)-1]
		}
		for _, si := range extractArray(a, "stats") {
			line.Stats = append(line.Stats, cellString(si))
		}
		lines = append(lines, line)
	}
	return lines
}

func parsePlayByPlay(pbp, chart map[string]interface{}) *PlayByPlayFragment {
	tms := extractMap(pbp, "tms")
	frag := &PlayByPlayFragment{
		HomeTeam: extractString(extractMap(tms, "home"), "displayName"),
		AwayTeam: extractString(extractMap(tms, "away"), "displayName"),
	}

	for _, gi := range extractArray(pbp, "playGrps") {
		grp, ok := gi.([]interface{})
		if !ok {
			continue
		}
		for _, pi := range grp {
			p, _ := pi.(map[string]interface{})

			period := extractInt(extractMap(p, "period"), "number")
			clock := extractString(extractMap(p, "clock"), "displayValue")
			secs, ok := parseClock(clock)
			if period == 0 || !ok {
				continue
			}

			play := PlayFragment{
				Text:      extractString(p, "text"),
				HomeAway:  extractString(p, "homeAway"),
				HomeScore: extractIntPtr(p, "homeScore"),
				AwayScore: extractIntPtr(p, "awayScore"),
				Period:    period,
				ClockSecs: secs,
			}
			_, play.Scoring = p["scoringPlay"]
			frag.Plays = append(frag.Plays, play)
		}
	}

	if len(chart) > 0 {
		frag.HasChart = true
		for _, si := range extractArray(chart, "plays") {
			s, _ := si.(map[string]interface{})
			coord := extractMap(s, "coordinate")
			frag.ShotChart = append(frag.ShotChart, ShotFragment{
				Text: extractString(s, "text"),
				X:    extractInt(coord, "x"),
				Y:    extractInt(coord, "y"),
			})
		}
	}
	return frag
}

func parseScheduleEvent(ev map[string]interface{}) ScheduleEvent {
	event := ScheduleEvent{
		Opponent:   extractString(extractMap(ev, "opponent"), "displayName"),
		OpponentID: extractString(extractMap(ev, "opponent"), "id"),
		SeasonType: extractString(extractMap(ev, "seasonType"), "name"),
		Status:     extractString(extractMap(ev, "status"), "description"),
	}

	if link := extractString(extractMap(ev, "time"), "link"); link != "" {
		if m := gameIDRegex.FindStringSubmatch(link); m != nil {
			event.GameID = &m[1]
		}
	}

	if dt := extractString(extractMap(ev, "date"), "date"); dt != "" {
		if ts, ok := parseSiteTime(dt); ok {
			event.Date = ts
			event.HasDate = true
		}
	}

	if networks := extractArray(ev, "network"); len(networks) > 0 {
		first, _ := networks[0].(map[string]interface{})
		event.Network = extractStringPtr(first, "name")
	}

	res := extractMap(ev, "result")
	event.WinLoss = extractString(res, "winLossSymbol")
	event.TeamScore = extractString(res, "currentTeamScore")
	event.OppScore = extractString(res, "opponentTeamScore")

	return event
}

// parseSiteTime handles the payload's two timestamp spellings: full RFC3339
// and the shortened form without seconds.
func parseSiteTime(s string) (time.Time, bool) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, true
	}
	if ts, err := time.Parse("2006-01-02T15:04Z", s); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

// parseClock converts an in-period "MM:SS" clock to seconds remaining.
func parseClock(clock string) (int, bool) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	mins, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	secs, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return mins*60 + secs, true
}

func cellString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}
