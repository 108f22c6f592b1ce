package mines

import (
	"strconv"
	"strings"
)

type CellValue int8

/*
 * Each item in the board's value array is one of the following:
 *
 *	- -1 means the cell holds a mine.
 *
 *	- 0 to 8 is the number of mines among the cell's neighbours.
 */
const Mine CellValue = -1

func (v CellValue) String() string {
	switch {
	case v == Mine:
		return "*"
	case v == 0:
		return "."
	default:
		return strconv.Itoa(int(v))
	}
}

type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is the immutable mine layout of a game, stored row-major.
type Board struct {
	GameParams
	Values []CellValue
}

func newBoard(params GameParams) *Board {
	return &Board{
		GameParams: params,
		Values:     make([]CellValue, params.Cells()),
	}
}

func (b *Board) At(row, col int) CellValue {
	return b.Values[b.index(row, col)]
}

func (b *Board) IsMine(row, col int) bool {
	return b.At(row, col) == Mine
}

func (b *Board) Mines() (count int) {
	for _, v := range b.Values {
		if v == Mine {
			count++
		}
	}
	return
}

func (b *Board) adjacentMines(i int) (count int) {
	for j := range b.neighbors(i) {
		if b.Values[j] == Mine {
			count++
		}
	}
	return
}

// Matrix returns the layout as rows of ints, mines as -1.
func (b *Board) Matrix() [][]int {
	m := make([][]int, b.Rows)
	for row := range b.Rows {
		m[row] = make([]int, b.Cols)
		for col := range b.Cols {
			m[row][col] = int(b.At(row, col))
		}
	}
	return m
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.Rows {
		for col := range b.Cols {
			sb.WriteString(b.At(row, col).String() + " ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
