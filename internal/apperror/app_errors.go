package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrWrongMode        = errors.New("computer moves only in human vs computer mode")
	ErrNotComputerTurn  = errors.New("it's not the computer's turn")
	ErrNoAvailableMoves = errors.New("no available moves")
)

// IsRejectedMove - reports whether err is a move the engine refused without touching the state.
func IsRejectedMove(err error) bool {
	return errors.Is(err, ErrGameFinished) ||
		errors.Is(err, ErrNotYourTurn) ||
		errors.Is(err, ErrCellOccupied) ||
		errors.Is(err, ErrInvalidCell) ||
		errors.Is(err, ErrWrongMode) ||
		errors.Is(err, ErrNotComputerTurn) ||
		errors.Is(err, ErrNoAvailableMoves)
}
