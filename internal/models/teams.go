package models

import "strings"

// TeamToTricode maps full franchise names to their three-letter codes.
var TeamToTricode = map[string]string{
	"Atlanta Hawks": "ATL", "Boston Celtics": "BOS", "Brooklyn Nets": "BKN",
	"Charlotte Hornets": "CHA", "Chicago Bulls": "CHI", "Cleveland Cavaliers": "CLE",
	"Dallas Mavericks": "DAL", "Denver Nuggets": "DEN", "Detroit Pistons": "DET",
	"Golden State Warriors": "GSW", "Houston Rockets": "HOU", "Indiana Pacers": "IND",
	"LA Clippers": "LAC", "Los Angeles Clippers": "LAC", "Los Angeles Lakers": "LAL",
	"LA Lakers": "LAL", "Memphis Grizzlies": "MEM",
	"Miami Heat": "MIA", "Milwaukee Bucks": "MIL", "Minnesota Timberwolves": "MIN",
	"New Orleans Pelicans": "NOP", "New York Knicks": "NYK", "Oklahoma City Thunder": "OKC",
	"Orlando Magic": "ORL", "Philadelphia 76ers": "PHI", "Phoenix Suns": "PHX",
	"Portland Trail Blazers": "POR", "Sacramento Kings": "SAC", "San Antonio Spurs": "SAS",
	"Toronto Raptors": "TOR", "Utah Jazz": "UTA", "Washington Wizards": "WAS",
}

// TricodeToTeam is the reverse mapping; ambiguous codes (LAC, LAL) resolve to
// the canonical "Los Angeles" form.
var TricodeToTeam = func() map[string]string {
	m := make(map[string]string, len(TeamToTricode))
	for name, code := range TeamToTricode {
		if existing, ok := m[code]; ok && len(existing) >= len(name) {
			continue
		}
		m[code] = name
	}
	return m
}()

// TricodeFromTeam resolves a full or partial team name to a tricode, or ""
// when no franchise matches.
func TricodeFromTeam(teamFull string) string {
	teamFull = strings.TrimSpace(teamFull)
	if teamFull == "" {
		return ""
	}
	if code, ok := TeamToTricode[teamFull]; ok {
		return code
	}
	for name, code := range TeamToTricode {
		if strings.Contains(teamFull, name) {
			return code
		}
	}
	return ""
}

// ValidTricode reports whether code names a known franchise.
func ValidTricode(code string) bool {
	_, ok := TricodeToTeam[code]
	return ok
}
