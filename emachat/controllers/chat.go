// emachat/controllers/chat.go
package controllers

import (
	"context"
	"emachat/emachat/services/chatbot"
	"emachat/emachat/services/conversation"
	"emachat/emachat/types"
	"emachat/emachat/utils/logging"

	"go.uber.org/zap"
)

// Sender is the outbound half of the chatbot socket.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// ChatController ties one socket to one conversation. It runs on the UI
// event loop only; nothing here is synchronized.
type ChatController struct {
	sender Sender
	rec    *conversation.Reconciler
}

func NewChatController(sender Sender, rec *conversation.Reconciler) *ChatController {
	if rec == nil {
		rec = conversation.NewReconciler()
	}
	return &ChatController{sender: sender, rec: rec}
}

// Submit adds text to the conversation and sends it. A failed send is logged
// and the message stays in the list.
func (c *ChatController) Submit(ctx context.Context, text string) (types.ChatMessage, bool) {
	msg, ok := c.rec.OnLocalSend(text)
	if !ok {
		return msg, false
	}
	logging.AppLogger.Info("sending message", zap.String("id", msg.ID), zap.Int("len", len(msg.Text)))
	if err := c.sender.Send(ctx, msg.Text); err != nil {
		logging.ErrorLogger.Error("message not delivered", zap.String("id", msg.ID), zap.Error(err))
	}
	return msg, true
}

// HandleEvent applies one socket event and reports whether the state changed.
func (c *ChatController) HandleEvent(ev chatbot.Event) bool {
	switch ev.Kind {
	case chatbot.EventOpen:
		c.rec.OnConnection(types.Open)
	case chatbot.EventFrame:
		outcome := c.rec.OnRemoteFrame(ev.Frame)
		if outcome == conversation.Stale {
			logging.AppLogger.Warn("frame for closed message dropped", zap.String("id", ev.Frame.ID))
			return false
		}
	case chatbot.EventError:
		logging.ErrorLogger.Error("chatbot connection error", zap.Error(ev.Err))
		return false
	case chatbot.EventClose:
		c.rec.OnConnection(types.Closed)
	}
	return true
}

func (c *ChatController) State() conversation.State {
	return c.rec.State()
}
