package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/arenatrack/internal/model"
)

const (
	shareBarCell   = "█"
	progressFilled = "█"
	progressEmpty  = "░"
)

// CategoryColors assigns each role a fixed chart color.
var CategoryColors = map[string]string{
	"Fighter":  "#ff6b6b",
	"Tank":     "#4ecdc4",
	"Mage":     "#45b7d1",
	"Assassin": "#96ceb4",
	"Marksman": "#feca57",
	"Support":  "#ff9ff3",
}

// ShareWidths splits width cells between roles proportionally to their wins,
// using largest remainders so the parts always sum to width. With no wins every
// part is zero.
func ShareWidths(cats model.CategoryStats, width int) []int {
	out := make([]int, len(cats))
	sum := 0
	for _, c := range cats {
		sum += c.Wins
	}
	if sum == 0 || width <= 0 {
		return out
	}
	type rem struct {
		idx  int
		frac float64
	}
	rems := make([]rem, 0, len(cats))
	used := 0
	for i, c := range cats {
		exact := float64(c.Wins) * float64(width) / float64(sum)
		out[i] = int(exact)
		used += out[i]
		rems = append(rems, rem{idx: i, frac: exact - float64(out[i])})
	}
	sort.SliceStable(rems, func(i, j int) bool { return rems[i].frac > rems[j].frac })
	for i := 0; used < width; i++ {
		out[rems[i%len(rems)].idx]++
		used++
	}
	return out
}

// RenderShareBar draws a stacked bar of role wins with a legend line.
func RenderShareBar(cats model.CategoryStats, width int) string {
	widths := ShareWidths(cats, width)
	var bar strings.Builder
	legend := make([]string, 0, len(cats))
	for i, c := range cats {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(categoryColor(c.Name)))
		if widths[i] > 0 {
			bar.WriteString(style.Render(strings.Repeat(shareBarCell, widths[i])))
		}
		legend = append(legend, style.Render("■")+fmt.Sprintf(" %s %d", c.Name, c.Wins))
	}
	if bar.Len() == 0 {
		bar.WriteString(strings.Repeat(progressEmpty, max(width, 0)))
	}
	return bar.String() + "\n" + strings.Join(legend, "  ")
}

// RenderProgressBar draws a bar filled to ratio (clamped to [0,1]) in the given color.
func RenderProgressBar(ratio float64, width int, c model.RGB) string {
	if width <= 0 {
		return ""
	}
	ratio = min(max(ratio, 0), 1)
	filled := roundHalfUp(float64(ratio * float64(width)))
	return Colorize(c, strings.Repeat(progressFilled, filled)) + strings.Repeat(progressEmpty, width-filled)
}

func categoryColor(name string) string {
	if c, ok := CategoryColors[name]; ok {
		return c
	}
	return "#666666"
}
