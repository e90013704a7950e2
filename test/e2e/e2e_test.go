//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
)

// Full-stack smoke test against a running server (and its Redis):
//
//	go test -tags e2e ./test/e2e/
//
// BASE_URL points at the server root, default http://localhost:8080.

const defaultBaseURL = "http://localhost:8080"

var baseURL string

func TestMain(m *testing.M) {
	// Load .env if present (ignore error)
	_ = godotenv.Load("../../.env")

	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	os.Exit(m.Run())
}

// ─── HTTP helpers ───────────────────────────────────────────────────

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, method, path string, body any, hostSecret string) (int, *envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, baseURL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if hostSecret != "" {
		req.Header.Set("X-Host-Secret", hostSecret)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return resp.StatusCode, &env
}

func decodeData(t *testing.T, env *envelope, dst any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatal(err)
	}
}

// ─── WebSocket helpers ──────────────────────────────────────────────

type wsEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func dialStream(t *testing.T, gameID string) *websocket.Conn {
	t.Helper()
	wsBase := strings.Replace(baseURL, "http", "ws", 1)
	conn, _, err := websocket.DefaultDialer.Dial(
		fmt.Sprintf("%s/ws/v1/games/%s/stream", wsBase, gameID), nil)
	if err != nil {
		t.Fatalf("dial stream: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendCommand(t *testing.T, conn *websocket.Conn, cmd map[string]any) {
	t.Helper()
	if err := conn.WriteJSON(cmd); err != nil {
		t.Fatalf("write %v: %v", cmd["command"], err)
	}
}

// waitEvent reads frames until the wanted event arrives, skipping others.
func waitEvent(t *testing.T, conn *websocket.Conn, want string) *wsEvent {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var ev wsEvent
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("waiting for %s: %v", want, err)
		}
		if ev.Event == want {
			return &ev
		}
		if ev.Event == "error" {
			t.Fatalf("waiting for %s, got error frame: %s", want, ev.Data)
		}
	}
	t.Fatalf("timed out waiting for %s", want)
	return nil
}

// ─── Flow ───────────────────────────────────────────────────────────

type gamePayload struct {
	Game struct {
		ID         string `json:"id"`
		Pin        string `json:"pin"`
		Phase      string `json:"phase"`
		HostSecret string `json:"hostSecret"`
	} `json:"game"`
	HostSecret string `json:"hostSecret"`
}

func TestFullGameFlow(t *testing.T) {
	// 1. Create a game from the default quiz.
	status, env := doJSON(t, http.MethodPost, "/api/v1/games", map[string]any{}, "")
	if status != http.StatusCreated {
		t.Fatalf("create: status %d (%v)", status, env.Error)
	}
	var created gamePayload
	decodeData(t, env, &created)
	gameID, pin, secret := created.Game.ID, created.Game.Pin, created.HostSecret
	if gameID == "" || len(pin) != 6 || secret == "" {
		t.Fatalf("create payload: %+v", created)
	}
	if created.Game.HostSecret != "" {
		t.Fatal("game object in create payload carries the secret")
	}

	// 2. Pin resolution returns the public view.
	status, env = doJSON(t, http.MethodGet, "/api/v1/games/pin/"+pin, nil, "")
	if status != http.StatusOK {
		t.Fatalf("resolve pin: status %d", status)
	}
	var resolved gamePayload
	decodeData(t, env, &resolved)
	if resolved.Game.ID != gameID || resolved.Game.HostSecret != "" {
		t.Fatalf("pin resolution: %+v", resolved.Game)
	}

	// 3. Host connects to the stream.
	hostConn := dialStream(t, gameID)
	sendCommand(t, hostConn, map[string]any{"command": "connect", "role": "host", "hostSecret": secret})
	waitEvent(t, hostConn, "connected")

	// 4. A player joins over REST, then attaches over the stream.
	status, env = doJSON(t, http.MethodPost, "/api/v1/games/"+gameID+"/players",
		map[string]any{"name": "e2e-alice"}, "")
	if status != http.StatusOK {
		t.Fatalf("join: status %d (%v)", status, env.Error)
	}
	var joined struct {
		PlayerID string `json:"playerId"`
	}
	decodeData(t, env, &joined)
	if joined.PlayerID == "" {
		t.Fatal("join returned no playerId")
	}

	playerConn := dialStream(t, gameID)
	sendCommand(t, playerConn, map[string]any{"command": "connect", "role": "player", "playerId": joined.PlayerID})
	waitEvent(t, playerConn, "connected")

	// 5. Host starts; both sides see the question open.
	if status, env = doJSON(t, http.MethodPost, "/api/v1/games/"+gameID+"/start", nil, secret); status != http.StatusOK {
		t.Fatalf("start: status %d (%v)", status, env.Error)
	}
	waitEvent(t, playerConn, "questionStart")
	waitEvent(t, hostConn, "questionStart")

	// 6. The only player answers: host sees the counter, and the
	// all-answered fast path reveals on both sides.
	sendCommand(t, playerConn, map[string]any{"command": "answer", "answerIndex": 0})
	waitEvent(t, hostConn, "playerAnswered")
	waitEvent(t, hostConn, "reveal")
	waitEvent(t, playerConn, "answerReceived")
	waitEvent(t, playerConn, "reveal")

	// Starting again is a phase conflict now.
	if status, _ = doJSON(t, http.MethodPost, "/api/v1/games/"+gameID+"/start", nil, secret); status != http.StatusConflict {
		t.Fatalf("second start: status %d, want 409", status)
	}

	// 7. Drive the game to END.
	for i := 0; i < 20; i++ {
		status, env = doJSON(t, http.MethodGet, "/api/v1/games/"+gameID, nil, "")
		if status != http.StatusOK {
			t.Fatalf("get state: status %d", status)
		}
		var state gamePayload
		decodeData(t, env, &state)
		if state.Game.Phase == "END" {
			waitEvent(t, playerConn, "gameEnd")
			return
		}
		if state.Game.Phase == "QUESTION" {
			sendCommand(t, playerConn, map[string]any{"command": "answer", "answerIndex": 0})
			waitEvent(t, playerConn, "answerReceived")
			continue
		}
		if status, env = doJSON(t, http.MethodPost, "/api/v1/games/"+gameID+"/next", nil, secret); status != http.StatusOK {
			t.Fatalf("next: status %d (%v)", status, env.Error)
		}
	}
	t.Fatal("game never reached END")
}

func TestHostSecretRejection(t *testing.T) {
	_, env := doJSON(t, http.MethodPost, "/api/v1/games", map[string]any{}, "")
	var created gamePayload
	decodeData(t, env, &created)

	status, env := doJSON(t, http.MethodPost, "/api/v1/games/"+created.Game.ID+"/start", nil, "not-the-secret")
	if status != http.StatusForbidden {
		t.Fatalf("status %d, want 403", status)
	}
	if env.Error == nil || env.Error.Code != "INVALID_HOST_SECRET" {
		t.Fatalf("error = %+v", env.Error)
	}

	// A bad-secret host handshake is refused and the socket closed.
	conn := dialStream(t, created.Game.ID)
	sendCommand(t, conn, map[string]any{"command": "connect", "role": "host", "hostSecret": "wrong"})
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var ev wsEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Event != "error" {
		t.Fatalf("event = %s, want error", ev.Event)
	}
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("connection stayed open after failed host handshake")
	}
}
