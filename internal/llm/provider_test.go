package llm

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBuildRequestKeepsZeroTemperatureOnTheWire(t *testing.T) {
	p := NewOpenAIProvider("key", "gpt-4o-mini")
	req := p.buildRequest(
		[]Message{{Role: RoleSystem, Content: "persona"}, {Role: RoleUser, Content: "hi"}},
		Options{MaxTokens: 400, Temperature: 0},
	)

	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	if !strings.Contains(string(b), `"temperature"`) {
		t.Fatalf("temperature dropped from serialized request:\n%s", b)
	}
	if req.Temperature >= 0.001 {
		t.Fatalf("temperature %v no longer deterministic", req.Temperature)
	}
}

func TestBuildRequestDefaultsEmptyRoleToUser(t *testing.T) {
	p := NewOpenAIProvider("key", "gpt-4o-mini")
	req := p.buildRequest([]Message{{Content: "hi"}}, Options{MaxTokens: 8})

	if got := req.Messages[0].Role; got != RoleUser {
		t.Fatalf("role = %q, want %q", got, RoleUser)
	}
	if req.MaxTokens != 8 {
		t.Fatalf("max tokens = %d, want 8", req.MaxTokens)
	}
}
