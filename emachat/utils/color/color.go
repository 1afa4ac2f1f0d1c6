// emachat/utils/color/color.go
package color

import (
	"github.com/fatih/color"
)

var (
	promptColor  = color.New(color.FgCyan, color.Bold)
	infoColor    = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	localColor   = color.New(color.FgHiMagenta, color.Bold)
	remoteColor  = color.New(color.FgMagenta)
)

func ColorPrompt(s string) string {
	return promptColor.Sprint(s)
}

func ColorInfo(s string) string {
	return infoColor.Sprint(s)
}

func ColorWarning(s string) string {
	return warningColor.Sprint(s)
}

func ColorError(s string) string {
	return errorColor.Sprint(s)
}

// ColorLocal paints the label of the user's own messages.
func ColorLocal(s string) string {
	return localColor.Sprint(s)
}

// ColorRemote paints the chatbot label.
func ColorRemote(s string) string {
	return remoteColor.Sprint(s)
}

// Disable turns coloring off, e.g. when output is not a terminal.
func Disable(off bool) {
	color.NoColor = off
}
