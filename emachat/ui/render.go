package ui

import (
	"emachat/emachat/types"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// bubbleShare is the widest a bubble may grow, in tenths of the screen.
const bubbleShare = 7

// Renderer draws the conversation. Messages arrive newest first and are drawn
// oldest at the top so the newest sits right above the input.
type Renderer struct {
	styles   Styles
	markdown *glamour.TermRenderer
	width    int
}

func NewRenderer(styles Styles, width int, markdown bool) *Renderer {
	r := &Renderer{styles: styles, width: width}
	if markdown {
		r.markdown, _ = glamour.NewTermRenderer(
			glamour.WithStandardStyle("light"),
			glamour.WithWordWrap(r.maxBubble()-2),
		)
	}
	return r
}

func (r *Renderer) maxBubble() int {
	w := r.width * bubbleShare / 10
	if w < 10 {
		w = 10
	}
	return w
}

func (r *Renderer) Render(msgs []types.ChatMessage) string {
	var sb strings.Builder
	for i := len(msgs) - 1; i >= 0; i-- {
		sb.WriteString(r.bubble(msgs[i]))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (r *Renderer) bubble(m types.ChatMessage) string {
	text := m.Text
	style := r.styles.Remote
	align := lipgloss.Left
	if m.Sender == types.Local {
		style = r.styles.Local
		align = lipgloss.Right
	} else if r.markdown != nil {
		if out, err := r.markdown.Render(text); err == nil {
			text = strings.Trim(out, "\n")
		}
	}

	// padding takes two columns
	if w := lipgloss.Width(text) + 2; w > r.maxBubble() {
		style = style.Width(r.maxBubble())
	}
	return lipgloss.PlaceHorizontal(r.width, align, style.Render(text))
}
