package routes

import (
	"emachat/emachat/controllers"
	"emachat/emachat/utils/logging"
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ChatbotRoutes serves the streaming socket at /ws/. Every text message is a
// prompt; the reply goes back as {"id","message"} frames sharing one id.
func ChatbotRoutes(ctrl *controllers.BotController) chi.Router {
	r := chi.NewRouter()
	r.HandleFunc("/ws/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			logging.ErrorLogger.Error("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")
		leave := ctrl.Join()
		defer leave()

		ctx := r.Context()
		for {
			typ, data, err := conn.Read(ctx)
			if err != nil {
				if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
					conn.Close(websocket.StatusNormalClosure, "")
				}
				return
			}
			if typ != websocket.MessageText {
				conn.Close(websocket.StatusUnsupportedData, "unsupported data")
				return
			}
			logging.SocketLogger.Debug("prompt", zap.Int("bytes", len(data)))

			for frame := range ctrl.Reply(ctx, string(data)) {
				payload, err := json.Marshal(frame)
				if err != nil {
					return
				}
				if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
					return
				}
			}
		}
	})
	return r
}
