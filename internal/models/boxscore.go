package models

// PlayerLine is a single player's stat line in a box score.
type PlayerLine struct {
	Name      string `json:"name"`
	Position  string `json:"position,omitempty"`
	Minutes   string `json:"minutes"`
	Points    int    `json:"points"`
	Rebounds  int    `json:"reboundsTotal"`
	Assists   int    `json:"assists"`
	Steals    int    `json:"steals"`
	Blocks    int    `json:"blocks"`
	Turnovers int    `json:"turnovers"`
	Fouls     int    `json:"foulsPersonal"`
	PlusMinus int    `json:"plusMinusPoints"`
	FGM       int    `json:"fieldGoalsMade"`
	FGA       int    `json:"fieldGoalsAttempted"`
	TPM       int    `json:"threePointersMade"`
	TPA       int    `json:"threePointersAttempted"`
	FTM       int    `json:"freeThrowsMade"`
	FTA       int    `json:"freeThrowsAttempted"`
}

// IsTripleDouble reports whether the line reaches double digits in at least
// three of points, rebounds, assists, steals and blocks.
func (p PlayerLine) IsTripleDouble() bool {
	count := 0
	for _, v := range []int{p.Points, p.Rebounds, p.Assists, p.Steals, p.Blocks} {
		if v >= 10 {
			count++
		}
	}
	return count >= 3
}

// BoxTeam is one side of a box score.
type BoxTeam struct {
	Tricode string        `json:"teamTricode"`
	Name    string        `json:"teamName"`
	Score   int           `json:"score"`
	Periods []PeriodScore `json:"periods,omitempty"`
	Players []PlayerLine  `json:"players,omitempty"`
}

// BoxScore is the single-game detail snapshot.
type BoxScore struct {
	GameID     string  `json:"gameId"`
	StatusText string  `json:"gameStatusText"`
	Home       BoxTeam `json:"homeTeam"`
	Away       BoxTeam `json:"awayTeam"`
}

// QuarterScores is the per-quarter score table for rendering: Q1-Q4, a
// combined OT column when overtime was played, and a Total column.
type QuarterScores struct {
	Headers []string
	Away    []int
	Home    []int
}

// BuildQuarterScores folds both teams' period scores into a display table.
// Returns nil when neither team reported any periods. Overtime periods are
// summed into a single OT column. When a team total is missing (zero with
// periods present) the column sum is used instead.
func BuildQuarterScores(away, home BoxTeam) *QuarterScores {
	if len(away.Periods) == 0 && len(home.Periods) == 0 {
		return nil
	}

	byPeriod := map[int][2]int{}
	for _, p := range away.Periods {
		v := byPeriod[p.Period]
		v[0] = p.Score
		byPeriod[p.Period] = v
	}
	for _, p := range home.Periods {
		v := byPeriod[p.Period]
		v[1] = p.Score
		byPeriod[p.Period] = v
	}

	headers := []string{"Q1", "Q2", "Q3", "Q4"}
	awayScores := make([]int, 0, 6)
	homeScores := make([]int, 0, 6)
	for q := 1; q <= 4; q++ {
		awayScores = append(awayScores, byPeriod[q][0])
		homeScores = append(homeScores, byPeriod[q][1])
	}

	var awayOT, homeOT int
	hasOT := false
	for period, v := range byPeriod {
		if period > 4 {
			hasOT = true
			awayOT += v[0]
			homeOT += v[1]
		}
	}
	if hasOT {
		headers = append(headers, "OT")
		awayScores = append(awayScores, awayOT)
		homeScores = append(homeScores, homeOT)
	}

	awayTotal := away.Score
	homeTotal := home.Score
	if awayTotal == 0 {
		for _, s := range awayScores {
			awayTotal += s
		}
	}
	if homeTotal == 0 {
		for _, s := range homeScores {
			homeTotal += s
		}
	}
	headers = append(headers, "Total")
	awayScores = append(awayScores, awayTotal)
	homeScores = append(homeScores, homeTotal)

	return &QuarterScores{Headers: headers, Away: awayScores, Home: homeScores}
}

// MarginSeries returns the home-minus-away cumulative margin after each
// played period, for charting. Excludes the Total column.
func (q *QuarterScores) MarginSeries() []float64 {
	if q == nil {
		return nil
	}
	n := len(q.Headers) - 1 // drop Total
	series := make([]float64, 0, n)
	margin := 0
	for i := 0; i < n; i++ {
		margin += q.Home[i] - q.Away[i]
		series = append(series, float64(margin))
	}
	return series
}
