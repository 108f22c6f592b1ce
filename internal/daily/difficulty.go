package daily

import (
	"strings"

	"github.com/vancomm/minesweeper-daily/internal/mines"
)

type Difficulty struct {
	Name  string `json:"-"`
	Title string `json:"title"`
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Mines int    `json:"mines"`
}

func (d Difficulty) Params() mines.GameParams {
	return mines.GameParams{Rows: d.Rows, Cols: d.Cols, MineCount: d.Mines}
}

const DefaultDifficulty = "medium"

var Difficulties = []Difficulty{
	{Name: "easy", Title: "Easy", Rows: 10, Cols: 10, Mines: 10},
	{Name: "medium", Title: "Medium", Rows: 15, Cols: 15, Mines: 25},
	{Name: "hard", Title: "Hard", Rows: 20, Cols: 20, Mines: 40},
	{Name: "pro", Title: "Pro", Rows: 30, Cols: 30, Mines: 50},
	{Name: "expert", Title: "Expert", Rows: 40, Cols: 40, Mines: 100},
	{Name: "extreme", Title: "Extreme", Rows: 50, Cols: 50, Mines: 150},
}

// Lookup finds a preset by name, ignoring case and surrounding space.
// Unknown names resolve to the medium preset with ok set to false.
func Lookup(name string) (d Difficulty, ok bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, d := range Difficulties {
		if d.Name == name {
			return d, true
		}
	}
	d, _ = Lookup(DefaultDifficulty)
	return d, false
}
