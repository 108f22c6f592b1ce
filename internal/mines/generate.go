package mines

import "github.com/sirupsen/logrus"

/*
 * Mines are placed in small clusters first, then the gaps are filled
 * preferring cells next to existing mines, which raises the numbers the
 * player sees. There is no solvability guarantee.
 *
 * The constants below fix the order and number of draws from the Source:
 * changing any of them changes every seeded board.
 */
const (
	clusterSize       = 3
	gapFillMinNearby  = 1
	gapFillMaxNearby  = 4
	gapFillChance     = 0.3
	gapFillRetryRatio = 2
)

var clusterOffsets = [9][2]int{
	{0, 0}, {-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1},
}

// Generate lays out params.MineCount mines drawing from src and numbers the
// remaining cells.
func Generate(params GameParams, src Source) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	b := newBoard(params)

	clustered := b.placeClusters(src)
	placed, attempts := b.fillGaps(src, clustered)
	b.completeMines(src, placed)
	b.number()

	Log.WithFields(logrus.Fields{
		"params":    params.String(),
		"clustered": clustered,
		"gapFilled": placed - clustered,
		"completed": params.MineCount - placed,
		"attempts":  attempts,
	}).Debug("board generated")

	return b, nil
}

func (b *Board) placeMine(row, col int) {
	b.Values[b.index(row, col)] = Mine
}

func (b *Board) randomCell(src Source) (row int, col int) {
	row = intn(src, b.Rows)
	col = intn(src, b.Cols)
	return
}

func (b *Board) placeClusters(src Source) (placed int) {
	numClusters := (b.MineCount + clusterSize - 1) / clusterSize

	for cluster := 0; cluster < numClusters && placed < b.MineCount; cluster++ {
		centerRow, centerCol := b.randomCell(src)

		offsets := clusterOffsets
		for i := len(offsets) - 1; i > 0; i-- {
			j := intn(src, i+1)
			offsets[i], offsets[j] = offsets[j], offsets[i]
		}

		inCluster := 0
		for _, d := range offsets {
			if placed >= b.MineCount || inCluster >= clusterSize {
				break
			}
			row, col := centerRow+d[0], centerCol+d[1]
			if b.PointInBounds(row, col) && !b.IsMine(row, col) {
				b.placeMine(row, col)
				placed++
				inCluster++
			}
		}
	}

	return
}

func (b *Board) fillGaps(src Source, placed int) (int, int) {
	attempts := 0
	maxAttempts := b.Cells() * gapFillRetryRatio

	for placed < b.MineCount && attempts < maxAttempts {
		attempts++
		row, col := b.randomCell(src)
		if b.IsMine(row, col) {
			continue
		}
		nearby := b.adjacentMines(b.index(row, col))
		// the chance roll is only drawn when the cell is not already preferred
		if gapFillMinNearby <= nearby && nearby <= gapFillMaxNearby ||
			src.Float64() < gapFillChance {
			b.placeMine(row, col)
			placed++
		}
	}

	return placed, attempts
}

// completeMines terminates because Validate leaves at least one free cell.
func (b *Board) completeMines(src Source, placed int) {
	for placed < b.MineCount {
		row, col := b.randomCell(src)
		if !b.IsMine(row, col) {
			b.placeMine(row, col)
			placed++
		}
	}
}

func (b *Board) number() {
	for i, v := range b.Values {
		if v != Mine {
			b.Values[i] = CellValue(b.adjacentMines(i))
		}
	}
}
