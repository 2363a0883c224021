// meta/meta.go
package meta

// Standard board size.
const (
	ROWS    = 6
	COLUMNS = 7
)

// DEPTH is the number of plies the computer opponent searches.
const DEPTH = 3

// GO_ROUTINES defines the number of goroutines used for the root moves.
const GO_ROUTINES = 1

// MAX_MOVES stops a game loop that never reaches a result.
const MAX_MOVES = 1000

const LISTEN_ADDR = ":8080"

const OUTPUT_DIR = "results"

// EXPERIMENT_GAMES is the number of games per matchup.
const EXPERIMENT_GAMES = 20

const LOG_LEVEL = "info"
