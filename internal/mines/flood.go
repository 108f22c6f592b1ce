package mines

import "github.com/gammazero/deque"

// flood opens cell start and, breadth first, every cell reachable from it
// through zero cells. Flagged cells are never opened. A zero cell has no
// mined neighbours, so flood never opens a mine.
func (g *GameState) flood(start int) {
	var todo deque.Deque[int]

	g.Revealed[start] = true
	todo.PushBack(start)

	for todo.Len() > 0 {
		i := todo.PopFront()
		if g.Board.Values[i] != 0 {
			continue
		}
		for j := range g.Board.neighbors(i) {
			if g.Revealed[j] || g.Flagged[j] {
				continue
			}
			g.Revealed[j] = true
			todo.PushBack(j)
		}
	}
}
