package records

import (
	"bytes"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestSortGameInfo(t *testing.T) {
	rows := []GameInfo{
		{GameID: "3", GameDay: strPtr("March 09, 2025"), GameTime: strPtr("01:00 PM PST")},
		{GameID: "2", GameDay: strPtr("March 08, 2025"), GameTime: strPtr("05:00 PM PST")},
		{GameID: "1", GameDay: strPtr("March 08, 2025"), GameTime: strPtr("03:00 PM PST")},
	}
	SortGameInfo(rows)

	want := []string{"1", "2", "3"}
	for i, id := range want {
		if rows[i].GameID != id {
			t.Errorf("rows[%d].GameID = %s, want %s", i, rows[i].GameID, id)
		}
	}
}

func TestSortGameInfoTiebreak(t *testing.T) {
	day := strPtr("March 08, 2025")
	tip := strPtr("03:00 PM PST")
	rows := []GameInfo{
		{GameID: "401712346", GameDay: day, GameTime: tip},
		{GameID: "401712345", GameDay: day, GameTime: tip},
	}
	SortGameInfo(rows)
	if rows[0].GameID != "401712345" {
		t.Errorf("equal-time games should order by id, got %s first", rows[0].GameID)
	}
}

func TestSortPlaysByClock(t *testing.T) {
	rows := []PlayEvent{
		{GameID: "1", Period: 2, SecsLeftPeriod: 84},
		{GameID: "1", Period: 1, SecsLeftPeriod: 1150},
		{GameID: "1", Period: 1, SecsLeftPeriod: 1176},
	}
	SortPlaysByClock(rows)

	if rows[0].SecsLeftPeriod != 1176 || rows[1].SecsLeftPeriod != 1150 {
		t.Errorf("period 1 order = %d, %d", rows[0].SecsLeftPeriod, rows[1].SecsLeftPeriod)
	}
	if rows[2].Period != 2 {
		t.Errorf("rows[2].Period = %d, want 2", rows[2].Period)
	}
}

func TestDatasetSort(t *testing.T) {
	d := Dataset{
		Box: []BoxscoreRow{
			{GameID: "1", Team: "A"},
			{GameID: "2", Team: "B"},
			{GameID: "2", Team: "C"},
		},
		PBP: []PlayEvent{
			{GameID: "1"},
			{GameID: "2"},
		},
	}
	d.Sort()

	// Boxscore and plays order game id descending.
	if d.Box[0].GameID != "2" || d.Box[0].Team != "C" {
		t.Errorf("d.Box[0] = %+v", d.Box[0])
	}
	if d.PBP[0].GameID != "2" {
		t.Errorf("d.PBP[0].GameID = %s, want 2", d.PBP[0].GameID)
	}
}

func TestDatasetAppend(t *testing.T) {
	var d Dataset
	if !d.Empty() {
		t.Error("zero dataset should be empty")
	}
	d.Append(Dataset{Info: []GameInfo{{GameID: "1"}}, Box: []BoxscoreRow{{GameID: "1"}}})
	d.Append(Dataset{PBP: []PlayEvent{{GameID: "1"}}})

	if d.Empty() || d.Rows() != 3 {
		t.Errorf("rows = %d, want 3", d.Rows())
	}
}

func TestTableWriteCSV(t *testing.T) {
	day := strPtr("March 08, 2025")
	rows := []GameInfo{{GameID: "401712345", GameStatus: StatusFinal, HomeTeam: "Kansas Jayhawks", GameDay: day}}
	table := GameInfoTable(rows)

	if len(table.Headers) != 29 {
		t.Fatalf("len(headers) = %d, want 29", len(table.Headers))
	}
	if table.Headers[0] != "game_id" || table.Headers[28] != "referee_3" {
		t.Errorf("headers = %v", table.Headers)
	}

	var buf bytes.Buffer
	if err := table.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv lines = %d, want header plus one row", len(lines))
	}
	if !strings.HasPrefix(lines[1], "401712345,Final,Kansas Jayhawks") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestPlayEventTablePeriodColumns(t *testing.T) {
	halves := PlayEventTable([]PlayEvent{{GameID: "1", PeriodType: PeriodHalf}})
	if halves.Headers[6] != "half" || halves.Headers[7] != "secs_left_half" {
		t.Errorf("half headers = %v", halves.Headers[6:8])
	}

	quarters := PlayEventTable([]PlayEvent{{GameID: "1", PeriodType: PeriodQuarter}})
	if quarters.Headers[6] != "quarter" || quarters.Headers[7] != "secs_left_qt" {
		t.Errorf("quarter headers = %v", quarters.Headers[6:8])
	}
}
