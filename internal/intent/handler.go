package intent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"qwikko-assistant/internal/platform"
)

// Handler performs the single backend lookup (or mutation) an intent needs
// and formats a deterministic text summary for the model's system prompt.
// An empty return means "no dynamic info; let the model answer generically".
type Handler interface {
	Handle(ctx context.Context, intent, message, token, userID string) string
}

// Registry routes a classified intent to the role's handler. The role set is
// closed and populated at startup. Intents shared by every role are resolved
// before the per-role dispatch.
type Registry struct {
	handlers map[string]Handler
	client   *platform.Client
	brand    string
}

func NewRegistry(client *platform.Client, frontendURL, brand string) *Registry {
	return &Registry{
		handlers: map[string]Handler{
			RoleCustomer: &CustomerHandler{client: client, frontendURL: frontendURL},
			RoleVendor:   &VendorHandler{client: client, frontendURL: frontendURL},
			RoleDelivery: &DeliveryHandler{client: client, frontendURL: frontendURL},
			RoleAdmin:    &AdminHandler{client: client, frontendURL: frontendURL},
		},
		client: client,
		brand:  brand,
	}
}

func (r *Registry) Handle(ctx context.Context, role, label, message, token, userID string) string {
	switch label {
	case "about_website":
		sections := r.aboutWebsiteSections(ctx)
		if len(sections) == 0 {
			return "Website information is not available right now."
		}
		return renderSectionsToMarkdown(sections)
	case "website_name":
		return r.websiteNameCampaign(role)
	}

	h, ok := r.handlers[role]
	if !ok {
		return ""
	}
	return h.Handle(ctx, label, message, token, userID)
}

// ---- CMS-backed "about the website" sections ----

type cmsSection struct {
	Title     string
	Body      string
	ListItems []string
}

// parseCMSSection splits a CMS content string of the form "title@body";
// bodies containing "*" are treated as list items.
func parseCMSSection(content string) *cmsSection {
	if content == "" {
		return nil
	}
	title, body, _ := strings.Cut(content, "@")
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)

	if strings.Contains(body, "*") {
		var items []string
		for _, part := range strings.Split(body, "*") {
			if p := strings.TrimSpace(part); p != "" {
				items = append(items, p)
			}
		}
		return &cmsSection{Title: title, ListItems: items}
	}
	return &cmsSection{Title: title, Body: body}
}

func renderSectionsToMarkdown(sections []cmsSection) string {
	var out []string
	for _, s := range sections {
		if s.Title != "" {
			out = append(out, "## "+s.Title)
		}
		if s.Body != "" {
			out = append(out, s.Body)
		}
		if len(s.ListItems) > 0 {
			lines := make([]string, 0, len(s.ListItems))
			for _, it := range s.ListItems {
				lines = append(lines, "- "+it)
			}
			out = append(out, strings.Join(lines, "\n"))
		}
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

// aboutWebsiteSections collects the general entry plus the "About Page 1..10"
// pages. Individual fetch failures are skipped; duplicates are dropped.
func (r *Registry) aboutWebsiteSections(ctx context.Context) []cmsSection {
	var sections []cmsSection

	appendItem := func(item *platform.CMSItem, err error) {
		if err != nil || item == nil || item.Content == "" {
			return
		}
		if s := parseCMSSection(item.Content); s != nil {
			sections = append(sections, *s)
		}
	}

	item, err := r.client.CMSByTitle(ctx, "user", "about_website")
	appendItem(item, err)
	for i := 1; i <= 10; i++ {
		item, err := r.client.CMSByTitle(ctx, "user", fmt.Sprintf("About Page %d", i))
		appendItem(item, err)
	}

	seen := make(map[string]bool)
	unique := sections[:0]
	for _, s := range sections {
		key := s.Title + "|" + s.Body + "|" + strings.Join(s.ListItems, "|")
		if !seen[key] {
			unique = append(unique, s)
			seen[key] = true
		}
	}
	if len(unique) == 0 {
		log.Println("[cms] no about-website sections available")
	}
	return unique
}

// websiteNameCampaign answers "what is this site called" with a small brand
// pitch, including one line tailored to the asking role.
func (r *Registry) websiteNameCampaign(role string) string {
	roleNotes := map[string]string{
		RoleCustomer: "- For customers: shop quickly from nearby stores, track your orders live, and pay securely.",
		RoleDelivery: "- For delivery companies: smart task pickup, maps and routes, and a live reporting dashboard.",
		RoleVendor:   "- For vendors: manage your products and stock, receive orders, and follow sales with clear reports.",
		RoleAdmin:    "- For admins: central management of content, vendors, delivery companies, and notifications.",
	}
	note, ok := roleNotes[role]
	if !ok {
		note = "- Built for customers, vendors, and delivery companies."
	}

	brand := r.brand
	return strings.Join([]string{
		"# " + brand,
		"The fastest way to connect local stores, customers, and delivery: order, track, receive.",
		"",
		"## Elevator pitch",
		brand + " brings stores, customers, and delivery companies together in one place: a smooth shopping experience, live tracking, and secure payment.",
		"",
		"## Why " + brand + "?",
		"- Fast, easy ordering.",
		"- Live order and delivery tracking.",
		"- Full support for vendors and delivery companies.",
		"- Clear management and reporting tools.",
		"",
		"## Core features",
		"- Browse and order quickly from multiple stores.",
		"- Smart coverage by service area.",
		"- Live order and delivery status tracking.",
		"- Secure payments with multiple options.",
		"- Instant order notifications.",
		"",
		"## Who is it for?",
		note,
		"",
		"## Call to action",
		"- Try it now and create your account in under a minute.",
		"",
		"**Website/brand name:** " + brand,
	}, "\n")
}
