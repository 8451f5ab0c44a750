package interfaces

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"TileArmy/internal/shared/gameconfig"
	"TileArmy/internal/shared/session"
	transporthttp "TileArmy/internal/shared/transport/http"
	"TileArmy/internal/shared/transport/ws"
	worldactor "TileArmy/internal/world/actor"
	"TileArmy/internal/world/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type testServer struct {
	srv     *httptest.Server
	runtime *worldactor.Runtime
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := gameconfig.Default()
	sim := service.New(cfg)
	rt := worldactor.NewRuntime(sim, session.NewSessMgr(), worldactor.Options{})

	m := New(rt, cfg, gameconfig.DefaultView(), nil)
	router := ws.NewRouter(nil)
	m.WsRegister(router)
	wsServer := ws.NewServer(router, m.Accept(), nil, ws.Options{})

	httpServer := transporthttp.NewHttpServer("", nil, nil)
	m.HttpRegister(httpServer.Engine())
	httpServer.Engine().GET("/ws", gin.WrapH(wsServer))

	srv := httptest.NewServer(httpServer.Handler())
	t.Cleanup(func() {
		srv.Close()
		rt.Shutdown()
	})
	return &testServer{srv: srv, runtime: rt}
}

func (s *testServer) dial(t *testing.T, name string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(s.srv.URL, "http") + "/ws?name=" + name
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", name, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readJSON(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	msg := map[string]any{}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestWs_握手收到init并能下单(t *testing.T) {
	s := newTestServer(t)
	conn := s.dial(t, "alice")

	init := readJSON(t, conn)
	if init["type"] != "init" || init["id"] != "alice" {
		t.Fatalf("init = %v", init)
	}
	state := init["state"].(map[string]any)
	bases := state["bases"].([]any)
	if len(bases) != 1 {
		t.Fatalf("bases = %v", bases)
	}
	baseID := bases[0].(map[string]any)["id"].(string)

	if err := conn.WriteJSON(map[string]any{"type": "spawnVehicle", "vType": "scout", "baseId": baseID}); err != nil {
		t.Fatalf("write: %v", err)
	}
	notice := readJSON(t, conn)
	if notice["type"] != "notice" || notice["ok"] != true {
		t.Fatalf("notice = %v", notice)
	}

	if err := conn.WriteJSON(map[string]any{"type": "upgradeBase", "baseId": baseID}); err != nil {
		t.Fatalf("write: %v", err)
	}
	notice = readJSON(t, conn)
	if notice["ok"] != false || notice["msg"] == "" {
		t.Fatalf("upgrade notice = %v", notice)
	}
}

func TestWs_畸形消息不回复(t *testing.T) {
	s := newTestServer(t)
	conn := s.dial(t, "alice")
	readJSON(t, conn)

	_ = conn.WriteMessage(websocket.TextMessage, []byte("{not json"))
	_ = conn.WriteJSON(map[string]any{"type": "dance"})
	_ = conn.WriteJSON(map[string]any{"type": "moveVehicle", "vehicleId": "v1", "x": "left"})
	// 心跳会被回复，用它确认前面几条都没有产生回复
	_ = conn.WriteJSON(map[string]any{"type": "heartbeat", "ctime": 1})

	msg := readJSON(t, conn)
	if msg["type"] != "heartbeat" {
		t.Fatalf("unexpected reply before heartbeat: %v", msg)
	}
}

func TestWs_重名连接被拒绝(t *testing.T) {
	s := newTestServer(t)
	first := s.dial(t, "alice")
	readJSON(t, first)

	second := s.dial(t, "alice")
	msg := readJSON(t, second)
	if msg["type"] != "error" || msg["msg"] != "Name in use" {
		t.Fatalf("second connection = %v", msg)
	}
	_ = second.SetReadDeadline(time.Now().Add(3 * time.Second))
	if _, _, err := second.ReadMessage(); err == nil {
		t.Fatalf("rejected connection should be closed")
	}
}

func TestWs_空名字被拒绝(t *testing.T) {
	s := newTestServer(t)
	conn := s.dial(t, "")
	msg := readJSON(t, conn)
	if msg["type"] != "error" || msg["msg"] != "Name required" {
		t.Fatalf("msg = %v", msg)
	}
}
