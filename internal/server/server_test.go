package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"qwikko-assistant/internal/session"
	"qwikko-assistant/internal/types"
)

type fakeResponder struct {
	reply   string
	calls   int
	gotRole string
	gotTok  string
	gotUser string
}

func (f *fakeResponder) Respond(ctx context.Context, userID, role, message, token string) (string, string) {
	f.calls++
	f.gotUser = userID
	f.gotRole = role
	f.gotTok = token
	return f.reply, "orders"
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func decodeReply(t *testing.T, resp *http.Response) types.ChatReply {
	t.Helper()
	defer resp.Body.Close()
	var out types.ChatReply
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	return out
}

func TestChatUnknownRoleShortCircuits(t *testing.T) {
	responder := &fakeResponder{reply: "should not appear"}
	srv := httptest.NewServer(New(responder, session.NewStore(0), nil, "*").Handler())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/chat", types.ChatRequest{
		UserID: "u1", Role: "courier", Message: "where is order 9",
	})
	out := decodeReply(t, resp)

	if out.Response != "Unknown role. Please specify your role." {
		t.Fatalf("response = %q", out.Response)
	}
	if responder.calls != 0 {
		t.Fatalf("responder called %d times for unknown role", responder.calls)
	}
}

func TestChatHappyPath(t *testing.T) {
	responder := &fakeResponder{reply: "You have 1 order."}
	srv := httptest.NewServer(New(responder, session.NewStore(0), nil, "*").Handler())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/chat", types.ChatRequest{
		UserID: "u1", Role: "Customer", Message: " show my orders ", Token: "tok-9",
	})
	out := decodeReply(t, resp)

	if out.Response != "You have 1 order." {
		t.Fatalf("response = %q", out.Response)
	}
	if out.Role != "customer" || out.Message != "show my orders" {
		t.Fatalf("echo fields = %q / %q", out.Role, out.Message)
	}
	if responder.gotRole != "customer" || responder.gotTok != "tok-9" || responder.gotUser != "u1" {
		t.Fatalf("responder saw role=%q token=%q user=%q", responder.gotRole, responder.gotTok, responder.gotUser)
	}
}

func TestChatEmptyMessage(t *testing.T) {
	responder := &fakeResponder{}
	srv := httptest.NewServer(New(responder, session.NewStore(0), nil, "*").Handler())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/chat", types.ChatRequest{UserID: "u1", Role: "customer"})
	out := decodeReply(t, resp)

	if out.Response != "Please type a message." {
		t.Fatalf("response = %q", out.Response)
	}
	if responder.calls != 0 {
		t.Fatalf("responder called for empty message")
	}
}

func TestSavedTokenUsedOnLaterTurns(t *testing.T) {
	responder := &fakeResponder{reply: "ok"}
	sessions := session.NewStore(0)
	srv := httptest.NewServer(New(responder, sessions, nil, "*").Handler())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/session/token", types.SaveTokenRequest{UserID: "u1", Token: "tok-77"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save token status = %d", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/api/chat", types.ChatRequest{
		UserID: "u1", Role: "customer", Message: "orders",
	})
	decodeReply(t, resp)

	if responder.gotTok != "tok-77" {
		t.Fatalf("responder token = %q, want tok-77", responder.gotTok)
	}
}

func TestSaveTokenValidation(t *testing.T) {
	srv := httptest.NewServer(New(&fakeResponder{}, session.NewStore(0), nil, "*").Handler())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/session/token", types.SaveTokenRequest{UserID: "u1"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(New(&fakeResponder{}, session.NewStore(0), nil, "*").Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestGuestFallbackWhenUserMissing(t *testing.T) {
	responder := &fakeResponder{reply: "hi"}
	srv := httptest.NewServer(New(responder, session.NewStore(0), nil, "*").Handler())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/chat", types.ChatRequest{Role: "customer", Message: "hello"})
	decodeReply(t, resp)

	if responder.gotUser != session.GuestUserID {
		t.Fatalf("user = %q, want %q", responder.gotUser, session.GuestUserID)
	}
}

// fakeTokenLookup stands in for the Postgres token store.
type fakeTokenLookup struct {
	tokens map[string]string
	saved  map[string]string
}

func (f *fakeTokenLookup) GetToken(ctx context.Context, userID string) (string, error) {
	return f.tokens[userID], nil
}

func (f *fakeTokenLookup) SaveToken(ctx context.Context, userID, token string) error {
	if f.saved == nil {
		f.saved = map[string]string{}
	}
	f.saved[userID] = token
	return nil
}

func TestPersistentTokenFallback(t *testing.T) {
	responder := &fakeResponder{reply: "ok"}
	lookup := &fakeTokenLookup{tokens: map[string]string{"u1": "tok-db"}}
	sessions := session.NewStore(time.Hour)
	srv := httptest.NewServer(New(responder, sessions, lookup, "*").Handler())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/chat", types.ChatRequest{
		UserID: "u1", Role: "customer", Message: "orders",
	})
	decodeReply(t, resp)

	if responder.gotTok != "tok-db" {
		t.Fatalf("responder token = %q, want tok-db", responder.gotTok)
	}
	// The recovered token is cached back into the session
	if got := sessions.Token("u1"); got != "tok-db" {
		t.Fatalf("session token = %q, want tok-db", got)
	}
}
