package espn

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Game, player, scoreboard, and schedule pages all embed their state as a
// script tag assigning a JSON object to window['__espnfitt__']. Everything
// the parser extracts comes out of that payload.

const stateMarker = "window['__espnfitt__']="

var stateRegex = regexp.MustCompile(`window\['__espnfitt__'\]={(.*)};`)

// pageState locates the embedded state payload in raw page markup and
// unmarshals it. An empty map with ok=false means the page carries no
// payload at all (bot interstitials, error pages).
func pageState(markup string) (map[string]interface{}, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, false
	}

	var script string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), stateMarker) {
			script = s.Text()
			return false
		}
		return true
	})
	if script == "" {
		return nil, false
	}

	m := stateRegex.FindStringSubmatch(script)
	if m == nil {
		return nil, false
	}

	var state map[string]interface{}
	if err := json.Unmarshal([]byte("{"+m[1]+"}"), &state); err != nil {
		return nil, false
	}
	return state, true
}

// pageContent returns payload["page"]["content"].
func pageContent(state map[string]interface{}) map[string]interface{} {
	return extractMap(extractMap(state, "page"), "content")
}

// The payload's shape drifts between seasons, so all traversal is tolerant:
// a missing or mistyped key yields the zero value, never a panic.

func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mv, ok := v.(map[string]interface{}); ok {
			return mv
		}
	}
	return map[string]interface{}{}
}

func extractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if av, ok := v.([]interface{}); ok {
			return av
		}
	}
	return []interface{}{}
}

func extractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if sv, ok := v.(string); ok {
			return sv
		}
	}
	return ""
}

func extractBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key]; ok {
		if bv, ok := v.(bool); ok {
			return bv
		}
	}
	return false
}

func extractInt(m map[string]interface{}, key string) int {
	v, _ := coerceInt(m[key])
	return v
}

// extractIntPtr is the nullable variant: absent keys and placeholder values
// (dashes, empty strings, junk text) come back as nil, never zero.
func extractIntPtr(m map[string]interface{}, key string) *int {
	v, ok := m[key]
	if !ok {
		return nil
	}
	n, ok := coerceInt(v)
	if !ok {
		return nil
	}
	return &n
}

// extractStringPtr returns nil for absent keys and blank values so a missing
// field is distinguishable from an empty one downstream.
func extractStringPtr(m map[string]interface{}, key string) *string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// coerceInt converts the value shapes the payload actually uses for numbers:
// JSON floats, quoted digits, occasionally real ints.
func coerceInt(v interface{}) (int, bool) {
	switch val := v.(type) {
	case float64:
		return int(val), true
	case int:
		return val, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
