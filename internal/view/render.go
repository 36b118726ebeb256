package view

import (
	"fmt"
	"html/template"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const (
	crossGlyph  = template.HTML(`<span style="color: red; font-size: 48px;">&#10060;</span>`)
	circleGlyph = template.HTML(`<span style="color: green; font-size: 48px;">&#11093;</span>`)
	emptyGlyph  = template.HTML(`<span style="font-size: 48px;">&nbsp;</span>`)
)

const drawMessage = "It's a draw!"

// RenderCell - glyph for a cell: red cross, green circle or a blank of the same size.
func RenderCell(cell entity.Cell) template.HTML {
	switch cell {
	case entity.CellX:
		return crossGlyph
	case entity.CellO:
		return circleGlyph
	default:
		return emptyGlyph
	}
}

// Banner - the terminal announcement, empty while the game is active.
func Banner(state entity.GameState) string {
	switch {
	case state.HasWinner():
		return fmt.Sprintf("Player %s wins!", state.Winner)
	case state.IsDraw:
		return drawMessage
	default:
		return ""
	}
}
