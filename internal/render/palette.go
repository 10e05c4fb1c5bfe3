package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/novasiege/internal/draw"
	"github.com/tomz197/novasiege/internal/object"
)

// ANSI 256 palette entries. The same strings feed lipgloss styles and the canvas.
const (
	colorWhite       = "255"
	colorPlayer      = "45"
	colorThrust      = "214"
	colorPulse       = "171"
	colorScout       = "203"
	colorHunter      = "213"
	colorTank        = "178"
	colorHealth      = "83"
	colorShield      = "39"
	colorRapid       = "226"
	colorTriple      = "207"
	colorPlayerShot  = "229"
	colorEnemyShot   = "209"
	colorTrail       = "240"
	colorDim         = "244"
	colorStarFar     = "236"
	colorStarMid     = "242"
	colorStarNear    = "250"
	colorHealthBarBg = "52"
)

var tintColors = map[object.Tint]string{
	object.TintWhite:  colorWhite,
	object.TintPlayer: colorPlayer,
	object.TintThrust: colorThrust,
	object.TintPulse:  colorPulse,
	object.TintScout:  colorScout,
	object.TintHunter: colorHunter,
	object.TintTank:   colorTank,
	object.TintHealth: colorHealth,
	object.TintShield: colorShield,
	object.TintRapid:  colorRapid,
	object.TintTriple: colorTriple,
}

func tintColor(t object.Tint) draw.Color {
	if c, ok := tintColors[t]; ok {
		return draw.PaletteColor(c)
	}
	return draw.PaletteColor(colorWhite)
}

func starColor(layer int) draw.Color {
	switch layer {
	case 0:
		return draw.PaletteColor(colorStarFar)
	case 1:
		return draw.PaletteColor(colorStarMid)
	}
	return draw.PaletteColor(colorStarNear)
}

// styles holds the lipgloss styles for text drawn over the canvas.
type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	dim    lipgloss.Style
	combo  lipgloss.Style
	record lipgloss.Style
	box    lipgloss.Style
	bars   map[string]lipgloss.Style
	tints  map[object.Tint]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	bar := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}
	tints := make(map[object.Tint]lipgloss.Style, len(tintColors))
	for t, c := range tintColors {
		tints[t] = r.NewStyle().Bold(true).Foreground(lipgloss.Color(c))
	}
	return styles{
		tints:  tints,
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorPlayer)),
		label:  r.NewStyle().Foreground(lipgloss.Color(colorDim)),
		value:  r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorWhite)),
		dim:    r.NewStyle().Foreground(lipgloss.Color(colorDim)),
		combo:  r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorRapid)),
		record: r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorTriple)),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorPlayer)).
			Padding(1, 4).
			Align(lipgloss.Center),
		bars: map[string]lipgloss.Style{
			"hp":     bar(colorHealth),
			"shield": bar(colorShield),
			"pulse":  bar(colorPulse),
			"rapid":  bar(colorRapid),
			"triple": bar(colorTriple),
		},
	}
}
