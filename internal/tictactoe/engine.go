package tictactoe

import (
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

// ComputerPlayer - the side the computer always plays.
const ComputerPlayer = entity.PlayerO

// IntN - returns a uniform value in [0, n).
type IntN func(n int) int

// Engine - applies moves to one game and keeps its state consistent.
type Engine struct {
	state *entity.GameState
	mode  entity.Mode
	intN  IntN
}

type Option func(*Engine)

// WithIntN - replaces the random source used by ComputerMove.
func WithIntN(intN IntN) Option {
	return func(engine *Engine) {
		engine.intN = intN
	}
}

// NewEngine - engine over a fresh game.
func NewEngine(mode entity.Mode, opts ...Option) *Engine {
	state := entity.NewGameState()
	return Attach(&state, mode, opts...)
}

// Attach - engine mutating an existing state in place, e.g. one loaded from a session.
func Attach(state *entity.GameState, mode entity.Mode, opts ...Option) *Engine {
	engine := &Engine{
		state: state,
		mode:  mode,
		intN:  rand.IntN,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

func (that *Engine) State() entity.GameState {
	return *that.state
}

func (that *Engine) Mode() entity.Mode {
	return that.mode
}

// PlaceMark - writes player's mark at (row, col) and evaluates the result of the move.
func (that *Engine) PlaceMark(row, col int, player entity.Player) error {
	if that.state.IsTerminal() {
		return apperror.ErrGameFinished
	}

	cell, err := that.validateMove(row, col, player)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.state.Board[cell] = player.Mark()
	that.updateGameStatus(player)

	return nil
}

// ComputerMove - places O on a uniformly random empty cell.
func (that *Engine) ComputerMove() (int, int, error) {
	if !that.mode.WithComputer() {
		return 0, 0, apperror.ErrWrongMode
	}

	if that.state.IsTerminal() {
		return 0, 0, apperror.ErrGameFinished
	}

	if that.state.CurrentPlayer != ComputerPlayer {
		return 0, 0, apperror.ErrNotComputerTurn
	}

	available := EmptyCells(that.state.Board)
	if len(available) == 0 {
		return 0, 0, apperror.ErrNoAvailableMoves
	}

	chosen := available[that.intN(len(available))]
	row, col := chosen/entity.BoardSize, chosen%entity.BoardSize

	if err := that.PlaceMark(row, col, ComputerPlayer); err != nil {
		return 0, 0, fmt.Errorf("computer failed to make turn: %w", err)
	}

	return row, col, nil
}

// Reset - starts the game over, the mode is kept.
func (that *Engine) Reset() {
	*that.state = entity.NewGameState()
}

// validateMove - checks if the move is valid and returns the board index.
func (that *Engine) validateMove(row, col int, player entity.Player) (int, error) {
	cell, ok := entity.Index(row, col)
	if !ok {
		return 0, fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCell, row, col)
	}

	if that.state.CurrentPlayer != player {
		return 0, apperror.ErrNotYourTurn
	}

	if !that.state.Board[cell].IsEmpty() {
		return 0, apperror.ErrCellOccupied
	}

	return cell, nil
}

// updateGameStatus - win first, then draw, otherwise hand the turn over.
func (that *Engine) updateGameStatus(player entity.Player) {
	switch {
	case CheckWinner(that.state.Board, player):
		that.state.Winner = player
	case IsDraw(that.state.Board):
		that.state.IsDraw = true
	default:
		that.state.CurrentPlayer = player.Opponent()
	}
}

// CheckWinner - reports whether any line is filled with player's mark.
func CheckWinner(board entity.Board, player entity.Player) bool {
	mark := player.Mark()
	if mark.IsEmpty() {
		return false
	}

	for _, combo := range entity.WinCombos {
		if board[combo[0]] == mark && board[combo[1]] == mark && board[combo[2]] == mark {
			return true
		}
	}

	return false
}

// IsDraw - reports whether the board is full. A won board may be full too, check the winner first.
func IsDraw(board entity.Board) bool {
	for _, cell := range board {
		if cell.IsEmpty() {
			return false
		}
	}

	return true
}

// EmptyCells - indexes of all empty cells in row-major order.
func EmptyCells(board entity.Board) []int {
	cells := make([]int, 0, len(board))
	for i, cell := range board {
		if cell.IsEmpty() {
			cells = append(cells, i)
		}
	}
	return cells
}
