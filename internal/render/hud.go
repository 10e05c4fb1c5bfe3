package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/novasiege/internal/draw"
	"github.com/tomz197/novasiege/internal/game"
)

const barWidth = 10

// bar draws a fixed-width gauge for a ratio in [0, 1].
func bar(ratio float64, width int) string {
	ratio = min(max(ratio, 0), 1)
	full := int(ratio*float64(width) + 0.5)
	return strings.Repeat("█", full) + strings.Repeat("░", width-full)
}

// hudLines builds the two status lines shown while a session is running.
func (t *Terminal) hudLines(s *game.Snapshot) []string {
	st := t.styles
	p := &s.Player

	score := st.label.Render("SCORE ") + st.value.Render(fmt.Sprintf("%06d", s.Score))
	if s.ScorePop > 0 {
		score = st.label.Render("SCORE ") + st.combo.Render(fmt.Sprintf("%06d", s.Score))
	}
	top := []string{
		score,
		st.label.Render("HI ") + st.value.Render(fmt.Sprintf("%06d", max(s.HighScore, s.Score))),
		st.label.Render("WAVE ") + st.value.Render(fmt.Sprint(s.Wave)),
	}
	if s.Multiplier > 1 {
		top = append(top, st.combo.Render(fmt.Sprintf("x%d", s.Multiplier))+" "+st.dim.Render(bar(s.ComboRatio, 5)))
	}

	var hpRatio, shieldRatio float64
	if p.MaxHealth > 0 {
		hpRatio = float64(p.Health) / float64(p.MaxHealth)
	}
	if p.MaxShield > 0 {
		shieldRatio = float64(p.Shield) / float64(p.MaxShield)
	}
	bottom := []string{
		st.label.Render("HP ") + st.bars["hp"].Render(bar(hpRatio, barWidth)),
		st.label.Render("SH ") + st.bars["shield"].Render(bar(shieldRatio, barWidth)),
		st.label.Render("PULSE ") + st.bars["pulse"].Render(bar(p.PulseReadiness(), 5)),
	}
	triple, rapid := p.TimerRatios()
	if rapid > 0 {
		bottom = append(bottom, st.bars["rapid"].Render("RAPID "+bar(rapid, 4)))
	}
	if triple > 0 {
		bottom = append(bottom, st.bars["triple"].Render("TRIPLE "+bar(triple, 4)))
	}

	return []string{strings.Join(top, "  "), strings.Join(bottom, "  ")}
}

// overlay returns the boxed panel for menu, pause and game over, or "" while
// playing.
func (t *Terminal) overlay(s *game.Snapshot) string {
	st := t.styles
	var lines []string

	switch s.State {
	case game.StateMenu:
		lines = []string{
			st.title.Render("N O V A   S I E G E"),
			"",
			st.dim.Render("move  WASD / HJKL / arrows"),
			st.dim.Render("fire  SPACE / Z"),
			st.dim.Render("pulse X   pause P   quit Q"),
			"",
			st.label.Render("HIGH SCORE ") + st.value.Render(fmt.Sprint(s.HighScore)),
			"",
			st.value.Render("press SPACE to start"),
		}
	case game.StatePaused:
		lines = []string{
			st.title.Render("PAUSED"),
			"",
			st.dim.Render("P to resume   Q to quit"),
		}
	case game.StateGameOver:
		lines = []string{
			st.title.Render("GAME OVER"),
			"",
			st.label.Render("SCORE ") + st.value.Render(fmt.Sprint(s.Score)),
		}
		if s.NewRecord {
			lines = append(lines, st.record.Render("NEW RECORD!"))
		} else {
			lines = append(lines, st.label.Render("BEST ")+st.value.Render(fmt.Sprint(s.HighScore)))
		}
		lines = append(lines, "", st.value.Render("press SPACE to play again"))
	default:
		return ""
	}

	return st.box.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// writeBlock writes a multi-line string centered on the render area.
func writeBlock(cw *draw.ChunkWriter, block string, width, height int) {
	lines := strings.Split(block, "\n")
	row := max((height-len(lines))/2, 0) + 1
	for i, line := range lines {
		col := max((width-lipgloss.Width(line))/2, 0) + 1
		cw.WriteAt(col, row+i, line)
	}
}
