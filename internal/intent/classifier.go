package intent

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"qwikko-assistant/internal/llm"
)

const (
	classifyMaxTokens = 8
	classifyTimeout   = 10 * time.Second
)

// Classifier maps free text to exactly one label from the role's allow-list,
// or Unknown. Model failures degrade to Unknown; they never propagate, since
// the conversation must still receive a best-effort reply.
type Classifier struct {
	provider llm.Provider
	catalog  *Catalog
}

func NewClassifier(provider llm.Provider, catalog *Catalog) *Classifier {
	return &Classifier{provider: provider, catalog: catalog}
}

func (c *Classifier) Classify(ctx context.Context, message, role string) string {
	allowed := c.catalog.Allowed(role)
	text := strings.TrimSpace(message)

	// Heuristic pre-pass: the site-information intents are caught without a
	// model call, typos included.
	if looksLikeWebsiteName(text) {
		if c.catalog.Contains(role, "website_name") {
			return "website_name"
		}
		return Unknown
	}
	if looksLikeAbout(text) {
		if c.catalog.Contains(role, "about_website") {
			return "about_website"
		}
		return Unknown
	}

	prompt := fmt.Sprintf(`You are an intent classifier for an e-commerce assistant (%s).

Return only ONE intent from the following list (ignore case and spelling mistakes):
%s.

If the message is asking about the website/app/company (e.g., who we are, about us, website info),
return "about_website" even if there are typos.

If the message is asking for the site/app name, return "website_name" even if there are typos.

Message: """%s"""`, role, strings.Join(allowed, ", "), text)

	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()
	raw, err := c.provider.Complete(ctx,
		[]llm.Message{{Role: llm.RoleSystem, Content: prompt}},
		llm.Options{MaxTokens: classifyMaxTokens},
	)
	if err != nil {
		log.Printf("[classify] model call failed: %v", err)
		return Unknown
	}

	// Labels come back underscore-separated; tolerate the model answering
	// with spaces instead.
	label := strings.ToLower(strings.TrimSpace(raw))
	label = strings.Join(strings.Fields(label), "_")
	if c.catalog.Contains(role, label) {
		return label
	}
	return Unknown
}
