package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"NoYaRender/logger"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ProgressSocketHandler streams job progress over a websocket. One JSON job
// snapshot per update; the connection closes when the job finishes.
func (h *APIHandler) ProgressSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", logger.ErrorField(err))
		return
	}
	defer conn.Close()

	id := mux.Vars(r)["id"]
	updates, ok := h.manager.Subscribe(id)
	if !ok {
		_ = conn.WriteJSON(map[string]string{"error": "job not found"})
		return
	}

	for job := range updates {
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(job); err != nil {
			logger.Debug("progress subscriber gone",
				logger.String("job", id), logger.ErrorField(err))
			return
		}
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "render finished"))
}
