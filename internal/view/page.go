package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const title = "Tic Tac Toe 🎮"

//go:embed templates/*.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

// ModeOption - one entry of the mode selector.
type ModeOption struct {
	Value    string
	Label    string
	Selected bool
}

// CellView - one board position as shown to the player.
type CellView struct {
	Row, Col  int
	Glyph     template.HTML
	Clickable bool
	Enabled   bool
}

// Page - everything the page template needs for one render.
type Page struct {
	Title   string
	Modes   []ModeOption
	Rows    [][]CellView
	Banner  string
	Outcome string
}

// NewPage - builds the view of a session. Empty cells are clickable, and enabled only while the game is active.
func NewPage(session *entity.Session) *Page {
	state := session.State

	modes := make([]ModeOption, 0, len(entity.Modes))
	for _, mode := range entity.Modes {
		modes = append(modes, ModeOption{
			Value:    mode.String(),
			Label:    mode.Label(),
			Selected: mode == session.Mode,
		})
	}

	rows := make([][]CellView, entity.BoardSize)
	for row := range entity.BoardSize {
		rows[row] = make([]CellView, entity.BoardSize)
		for col := range entity.BoardSize {
			cell := state.Board.At(row, col)
			rows[row][col] = CellView{
				Row:       row,
				Col:       col,
				Glyph:     RenderCell(cell),
				Clickable: cell.IsEmpty(),
				Enabled:   cell.IsEmpty() && state.IsActive(),
			}
		}
	}

	var outcome string
	switch state.Phase() {
	case entity.PhaseWon:
		outcome = "success"
	case entity.PhaseDrawn:
		outcome = "info"
	}

	return &Page{
		Title:   title,
		Modes:   modes,
		Rows:    rows,
		Banner:  Banner(state),
		Outcome: outcome,
	}
}

// Render - writes the full HTML page.
func Render(w io.Writer, page *Page) error {
	if err := pageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	return nil
}
