package bot

import (
	"context"
	"log"
	"strings"

	"qwikko-assistant/internal/intent"
	"qwikko-assistant/internal/llm"
	"qwikko-assistant/internal/session"
)

const (
	replyMaxTokens = 400
	apology        = "Sorry, can't process request right now."
)

// Composer runs the full turn pipeline: classify the message, run the role
// handler for dynamic backend info, then ask the model for the final reply
// with the session history as context.
type Composer struct {
	provider   llm.Provider
	classifier *intent.Classifier
	registry   *intent.Registry
	catalog    *intent.Catalog
	sessions   *session.Store
}

func NewComposer(provider llm.Provider, classifier *intent.Classifier, registry *intent.Registry, catalog *intent.Catalog, sessions *session.Store) *Composer {
	return &Composer{
		provider:   provider,
		classifier: classifier,
		registry:   registry,
		catalog:    catalog,
		sessions:   sessions,
	}
}

// Respond produces the assistant reply for one user message. Turns for the
// same user are serialized so history stays consistent under concurrent
// sends. Failures never surface as errors to the transport; the user gets an
// apology and the turn is still recorded.
func (c *Composer) Respond(ctx context.Context, userID, role, message, token string) (reply, label string) {
	if userID == "" {
		userID = session.GuestUserID
	}
	unlock := c.sessions.LockUser(userID)
	defer unlock()

	c.sessions.AppendTurn(userID, llm.RoleUser, message)

	label = c.classifier.Classify(ctx, message, role)
	dynamicInfo := c.registry.Handle(ctx, role, label, message, token, userID)

	system := c.buildSystemPrompt(role, label, dynamicInfo)
	messages := make([]llm.Message, 0, session.MaxTurns+1)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})
	for _, m := range c.sessions.History(userID) {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := c.provider.Complete(ctx, messages, llm.Options{
		MaxTokens:   replyMaxTokens,
		Temperature: 0,
	})
	if err != nil {
		log.Printf("[bot] complete: %v", err)
		reply = apology
	}
	reply = strings.TrimSpace(reply)

	c.sessions.AppendTurn(userID, llm.RoleAssistant, reply)
	return reply, label
}

func (c *Composer) buildSystemPrompt(role, label, dynamicInfo string) string {
	var b strings.Builder
	b.WriteString(c.catalog.Persona(role))
	b.WriteString("\nDetected intent: ")
	b.WriteString(label)
	if dynamicInfo != "" {
		b.WriteString("\nBackend info:\n")
		b.WriteString(dynamicInfo)
		b.WriteString("\nUse the backend info above to answer the user accurately. Do not invent data that is not in it.")
	}
	return b.String()
}
