package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestProvider_暴露游戏指标(t *testing.T) {
	p, err := New(true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = p.Shutdown(context.Background()) }()

	g, err := NewGame(p.Meter())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	g.ObserveTick(3 * time.Millisecond)
	g.Broadcast(4)
	g.Command("spawnVehicle", false)
	g.Connected(1)

	srv := httptest.NewServer(p.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"tilearmy_broadcasts", "tilearmy_commands", `result="rejected"`} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("期望指标输出包含 %q", want)
		}
	}
}

func TestGame_未启用与nil安全(t *testing.T) {
	p, err := New(false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Handler() != nil {
		t.Fatalf("未启用时不应暴露 handler")
	}
	var g *Game
	g.Broadcast(1)
	g.Command("moveVehicle", true)
	g.ObserveTick(time.Millisecond)
}
