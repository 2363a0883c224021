package game

const (
	CenterWeight   = 6
	FourWeight     = 100
	ThreeWeight    = 10
	TwoWeight      = 5
	OppThreeWeight = -80
)

// ScoreWindow scores a single window of WindowLength cells for piece. Own
// patterns are mutually exclusive; the opponent threat penalty is checked
// on its own and added.
func ScoreWindow(window [WindowLength]Piece, piece Piece) int {
	own, opp, empty := 0, 0, 0
	opponent := piece.Opponent()
	for _, cell := range window {
		switch cell {
		case piece:
			own++
		case opponent:
			opp++
		case Empty:
			empty++
		}
	}

	score := 0
	switch {
	case own == 4:
		score += FourWeight
	case own == 3 && empty == 1:
		score += ThreeWeight
	case own == 2 && empty == 2:
		score += TwoWeight
	}

	if opp == 3 && empty == 1 {
		score += OppThreeWeight
	}

	return score
}

// ScorePosition sums a center column bonus and the score of every window on
// the board, from piece's perspective.
func ScorePosition(b *Board, piece Piece) int {
	score := 0

	// Center control
	center := b.columns / 2
	for row := 0; row < b.rows; row++ {
		if b.At(row, center) == piece {
			score += CenterWeight
		}
	}

	// Horizontal
	for row := 0; row < b.rows; row++ {
		for col := 0; col <= b.columns-WindowLength; col++ {
			score += ScoreWindow(b.window(row, col, 0, 1), piece)
		}
	}

	// Vertical
	for col := 0; col < b.columns; col++ {
		for row := 0; row <= b.rows-WindowLength; row++ {
			score += ScoreWindow(b.window(row, col, 1, 0), piece)
		}
	}

	// Diagonal /
	for row := 0; row <= b.rows-WindowLength; row++ {
		for col := 0; col <= b.columns-WindowLength; col++ {
			score += ScoreWindow(b.window(row, col, 1, 1), piece)
		}
	}

	// Diagonal \
	for row := 0; row <= b.rows-WindowLength; row++ {
		for col := 0; col <= b.columns-WindowLength; col++ {
			score += ScoreWindow(b.window(row+WindowLength-1, col, -1, 1), piece)
		}
	}

	return score
}

func (b *Board) window(row, col, dRow, dCol int) [WindowLength]Piece {
	var w [WindowLength]Piece
	for i := range w {
		w[i] = b.At(row+i*dRow, col+i*dCol)
	}
	return w
}
