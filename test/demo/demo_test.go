//go:build integration_test

// Demo against a locally running server:
//
//	CONFIG_PATH=config.yaml go run ./cmd &
//	go test -tags integration_test ./test/demo
package demo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

const addr = "localhost:8080"

type joinResponse struct {
	ClientID   string   `json:"client_id"`
	Token      string   `json:"token"`
	QuestionID string   `json:"question_id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer"`
}

type frame struct {
	MessageType string `json:"message_type"`
	QuestionID  string `json:"question_id"`
	Answer      string `json:"answer"`
}

func TestGameRace(t *testing.T) {
	// Two players join; the first correct answer wins and advances everyone.
	j1, ws1 := join(t)
	_, ws2 := join(t)

	send(t, ws1, frame{
		MessageType: "push_answer",
		QuestionID:  j1.QuestionID,
		Answer:      j1.Answer,
	})

	outcome1 := receive(t, ws1)
	require.Equal(t, "correct_answer", outcome1.MessageType)

	next1 := receive(t, ws1)
	require.Equal(t, "new_question", next1.MessageType)
	require.NotEqual(t, j1.QuestionID, next1.QuestionID)

	outcome2 := receive(t, ws2)
	require.Equal(t, "too_late", outcome2.MessageType)

	next2 := receive(t, ws2)
	require.Equal(t, "new_question", next2.MessageType)
	require.Equal(t, next1.QuestionID, next2.QuestionID)

	// The already-resolved question is now stale.
	send(t, ws1, frame{
		MessageType: "push_answer",
		QuestionID:  j1.QuestionID,
		Answer:      j1.Answer,
	})
	require.Equal(t, "invalid_message", receive(t, ws1).MessageType)
}

func join(t *testing.T) (joinResponse, *websocket.Conn) {
	t.Helper()

	resp, err := http.Get(fmt.Sprintf("http://%s/", addr))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var j joinResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&j))

	ws, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("ws://%s/ws?token=%s", addr, j.Token), nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })

	return j, ws
}

func send(t *testing.T, ws *websocket.Conn, f frame) {
	t.Helper()

	b, err := json.Marshal(f)
	require.NoError(t, err)
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, b))
}

func receive(t *testing.T, ws *websocket.Conn) frame {
	t.Helper()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, b, err := ws.ReadMessage()
	require.NoError(t, err)

	var f frame
	require.NoError(t, json.Unmarshal(b, &f))
	return f
}
