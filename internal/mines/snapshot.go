package mines

// Snapshot is the client-facing view of a game. Values of unopened cells are
// null so that "unknown" is distinguishable from 0.
type Snapshot struct {
	Rows        int      `json:"rows"`
	Cols        int      `json:"cols"`
	Revealed    [][]bool `json:"revealed"`
	Flags       [][]bool `json:"flags"`
	Values      [][]*int `json:"values"`
	GameOver    bool     `json:"gameOver"`
	Won         bool     `json:"won"`
	MineCount   int      `json:"minesCount"`
	ElapsedTime int      `json:"elapsedTime"`
	StartTime   *int64   `json:"startTime"` /* unix millis */
	HitMineRow  *int     `json:"hitMineRow"`
	HitMineCol  *int     `json:"hitMineCol"`
}

func (g *GameState) Snapshot() Snapshot {
	rows, cols, mineCount := g.Board.Unpack()

	s := Snapshot{
		Rows:        rows,
		Cols:        cols,
		Revealed:    make([][]bool, rows),
		Flags:       make([][]bool, rows),
		Values:      make([][]*int, rows),
		GameOver:    g.GameOver,
		Won:         g.Won,
		MineCount:   mineCount,
		ElapsedTime: g.Elapsed(),
	}

	for row := range rows {
		s.Revealed[row] = make([]bool, cols)
		s.Flags[row] = make([]bool, cols)
		s.Values[row] = make([]*int, cols)
		for col := range cols {
			i := g.Board.index(row, col)
			s.Revealed[row][col] = g.Revealed[i]
			s.Flags[row][col] = g.Flagged[i]
			if g.Revealed[i] {
				v := int(g.Board.Values[i])
				s.Values[row][col] = &v
			}
		}
	}

	if g.StartTime != nil {
		ms := g.StartTime.UnixMilli()
		s.StartTime = &ms
	}

	if g.HitMine != nil {
		row, col := g.HitMine.Row, g.HitMine.Col
		s.HitMineRow, s.HitMineCol = &row, &col
	}

	return s
}
