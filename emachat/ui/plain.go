package ui

import (
	"bufio"
	"context"
	"emachat/emachat/controllers"
	"emachat/emachat/services/chatbot"
	"emachat/emachat/types"
	"emachat/emachat/utils/color"
	"fmt"
	"io"
	"strings"
)

// streamPrinter turns successive versions of the open reply into terminal
// output. When a new version extends the printed one only the tail is
// written; otherwise the full text starts on a fresh line.
type streamPrinter struct {
	label string
	id    string
	shown string
}

func (p *streamPrinter) update(msg types.ChatMessage) string {
	if msg.ID == p.id {
		if msg.Text == p.shown {
			return ""
		}
		if strings.HasPrefix(msg.Text, p.shown) {
			tail := msg.Text[len(p.shown):]
			p.shown = msg.Text
			return tail
		}
	}
	p.id, p.shown = msg.ID, msg.Text
	return "\n" + color.ColorRemote(p.label+":") + " " + msg.Text
}

// RunPlain is the line-oriented client: each input line is sent, replies are
// streamed inline. It returns when in is exhausted, the user types exit or
// ctx ends. closer tears the socket down on the way out.
func RunPlain(ctx context.Context, ctrl *controllers.ChatController, events <-chan chatbot.Event, closer func(), in io.Reader, out io.Writer, opts Options) error {
	defer closer()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	printer := &streamPrinter{label: opts.BotLabel}
	prompt := color.ColorPrompt(opts.UserLabel + "> ")
	fmt.Fprint(out, prompt)

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return nil
			}
			trimmed := strings.TrimSpace(line)
			if trimmed == "exit" || trimmed == "quit" {
				return nil
			}
			sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
			ctrl.Submit(sendCtx, line)
			cancel()
			fmt.Fprint(out, prompt)
		case ev, ok := <-events:
			if !ok {
				// keep reading input; sends are logged as undelivered
				events = nil
				continue
			}
			if !ctrl.HandleEvent(ev) || ev.Kind != chatbot.EventFrame {
				continue
			}
			if open, ok := ctrl.State().Open(); ok {
				if s := printer.update(open); s != "" {
					fmt.Fprint(out, s)
				}
			}
		}
	}
}
