package server

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"qwikko-assistant/internal/session"
	"qwikko-assistant/internal/types"
)

func dialSocket(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	return conn
}

func TestSocketSendMessageRoundTrip(t *testing.T) {
	responder := &fakeResponder{reply: "Your order #7 is pending."}
	srv := httptest.NewServer(New(responder, session.NewStore(0), nil, "*").Handler())
	defer srv.Close()

	conn := dialSocket(t, srv)
	defer conn.Close()

	err := conn.WriteJSON(outFrame{Event: "sendMessage", Data: types.ChatRequest{
		UserID: "u1", Role: "customer", Message: "track order 7",
	}})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	var got struct {
		Event string          `json:"event"`
		Data  types.ChatReply `json:"data"`
	}
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Event != "receiveMessage" {
		t.Fatalf("event = %q, want receiveMessage", got.Event)
	}
	if got.Data.Response != "Your order #7 is pending." {
		t.Fatalf("response = %q", got.Data.Response)
	}
}

func TestSocketSaveTokenThenChat(t *testing.T) {
	responder := &fakeResponder{reply: "ok"}
	srv := httptest.NewServer(New(responder, session.NewStore(0), nil, "*").Handler())
	defer srv.Close()

	conn := dialSocket(t, srv)
	defer conn.Close()

	if err := conn.WriteJSON(outFrame{Event: "saveToken", Data: types.SaveTokenRequest{
		UserID: "u1", Token: "tok-ws",
	}}); err != nil {
		t.Fatalf("write saveToken: %v", err)
	}
	if err := conn.WriteJSON(outFrame{Event: "sendMessage", Data: types.ChatRequest{
		UserID: "u1", Role: "customer", Message: "orders",
	}}); err != nil {
		t.Fatalf("write sendMessage: %v", err)
	}

	var got struct {
		Event string          `json:"event"`
		Data  types.ChatReply `json:"data"`
	}
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if responder.gotTok != "tok-ws" {
		t.Fatalf("responder token = %q, want tok-ws", responder.gotTok)
	}
}

func TestSocketUnknownEvent(t *testing.T) {
	srv := httptest.NewServer(New(&fakeResponder{}, session.NewStore(0), nil, "*").Handler())
	defer srv.Close()

	conn := dialSocket(t, srv)
	defer conn.Close()

	if err := conn.WriteJSON(outFrame{Event: "bogus", Data: nil}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var got struct {
		Event string              `json:"event"`
		Data  types.ErrorResponse `json:"data"`
	}
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Event != "error" || !strings.Contains(got.Data.Error, "unknown event") {
		t.Fatalf("frame = %+v", got)
	}
}
