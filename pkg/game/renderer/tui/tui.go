// Package tui renders a generated level as colored text for quick
// inspection in a terminal.
package tui

import (
	"strings"

	"github.com/gookit/color"

	"cavernfall/pkg/engine/terminal"
	"cavernfall/pkg/engine/world"
	"cavernfall/pkg/game/level"
)

// Icon constants for the cave preview
const (
	IconWall     = "▒"
	IconFloor    = "·"
	IconSpawn    = "@"
	IconGoal     = "▲"
	IconCoin     = "●"
	IconPlatform = "═"
	IconEnemy    = "ω"
)

// Renderer is the terminal preview renderer.
type Renderer struct {
	colorWall     color.Style
	colorFloor    color.Style
	colorSpawn    color.Style
	colorGoal     color.Style
	colorCoin     color.Style
	colorPlatform color.Style
	colorEnemy    color.Style

	styled bool
}

// New creates a preview renderer. Color styling is enabled only when
// stdout is an interactive terminal.
func New() *Renderer {
	r := &Renderer{styled: terminal.IsInteractive()}
	r.colorWall = color.Style{color.FgGray}
	r.colorFloor = color.Style{color.FgDarkGray}
	r.colorSpawn = color.Style{color.FgGreen, color.OpBold}
	r.colorGoal = color.Style{color.FgYellow, color.OpBold}
	r.colorCoin = color.Style{color.FgYellow}
	r.colorPlatform = color.Style{color.FgCyan}
	r.colorEnemy = color.Style{color.FgRed, color.OpBold}
	return r
}

// Render returns the level as rows of styled icons. Rows wider than the
// terminal are clipped so the preview never wraps.
func (r *Renderer) Render(lvl *level.Level) string {
	maxWidth := terminal.GetWidth()
	width := lvl.Grid.Width()
	if width > maxWidth {
		width = maxWidth
	}

	overlay := r.buildOverlay(lvl)

	var sb strings.Builder
	for y := 0; y < lvl.Grid.Height(); y++ {
		for x := 0; x < width; x++ {
			icon, style := overlay[world.Point{X: x, Y: y}], r.colorFloor
			if icon == "" {
				if lvl.Grid.At(x, y).IsWall() {
					icon, style = IconWall, r.colorWall
				} else {
					icon, style = IconFloor, r.colorFloor
				}
			} else {
				style = r.styleFor(icon)
			}
			if r.styled {
				sb.WriteString(style.Sprint(icon))
			} else {
				sb.WriteString(icon)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// buildOverlay maps entity positions to their icons; later entries never
// overwrite spawn/goal markers.
func (r *Renderer) buildOverlay(lvl *level.Level) map[world.Point]string {
	overlay := make(map[world.Point]string)
	for _, p := range lvl.Platforms {
		for _, c := range p.Cells() {
			overlay[c] = IconPlatform
		}
	}
	for _, c := range lvl.Coins {
		overlay[c.Point()] = IconCoin
	}
	for _, e := range lvl.Enemies {
		overlay[e.Point()] = IconEnemy
	}
	overlay[lvl.Spawn] = IconSpawn
	overlay[lvl.Goal] = IconGoal
	return overlay
}

func (r *Renderer) styleFor(icon string) color.Style {
	switch icon {
	case IconSpawn:
		return r.colorSpawn
	case IconGoal:
		return r.colorGoal
	case IconCoin:
		return r.colorCoin
	case IconPlatform:
		return r.colorPlatform
	case IconEnemy:
		return r.colorEnemy
	default:
		return r.colorFloor
	}
}
