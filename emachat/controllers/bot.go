package controllers

import (
	"context"
	"emachat/emachat/types"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// BotController is the companion chatbot used for local runs. Every reply is
// streamed as frames that carry the whole text so far.
type BotController struct {
	delay time.Duration
	reply func(prompt string) string
	newID func() string

	sessions atomic.Int64
}

func NewBotController(delay time.Duration) *BotController {
	return &BotController{
		delay: delay,
		reply: EchoReply,
		newID: uuid.NewString,
	}
}

// EchoReply is the default answer.
func EchoReply(prompt string) string {
	return "You said: " + strings.TrimSpace(prompt)
}

// Partials splits text into cumulative prefixes, one per word.
func Partials(text string) []string {
	var out []string
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' && i > 0 && text[i-1] != ' ' {
			out = append(out, text[:i])
		}
	}
	if text != "" {
		out = append(out, text)
	}
	return out
}

// Join counts a socket for the lifetime of the returned func.
func (b *BotController) Join() (leave func()) {
	b.sessions.Add(1)
	return func() { b.sessions.Add(-1) }
}

func (b *BotController) Sessions() int64 {
	return b.sessions.Load()
}

// Reply streams the answer to prompt. The channel closes when the answer is
// complete or ctx ends.
func (b *BotController) Reply(ctx context.Context, prompt string) <-chan types.Frame {
	ch := make(chan types.Frame)
	id := b.newID()
	parts := Partials(b.reply(prompt))

	go func() {
		defer close(ch)
		for i, p := range parts {
			if i > 0 && b.delay > 0 {
				select {
				case <-time.After(b.delay):
				case <-ctx.Done():
					return
				}
			}
			select {
			case ch <- types.Frame{ID: id, Message: p}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
