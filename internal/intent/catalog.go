package intent

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Unknown is the sentinel label returned when a message cannot be mapped to
// any intent in the active role's catalog.
const Unknown = "unknown"

// Roles recognized by the assistant.
const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleDelivery = "delivery"
	RoleAdmin    = "admin"
)

type roleSpec struct {
	Persona string   `yaml:"persona"`
	Intents []string `yaml:"intents"`
}

// Catalog maps each role to its persona and ordered allow-list of intent
// labels. It is immutable after construction; unknown roles fall back to the
// customer entry.
type Catalog struct {
	roles map[string]roleSpec
}

func Default() *Catalog {
	return &Catalog{roles: map[string]roleSpec{
		RoleCustomer: {
			Persona: "You are a helpful AI assistant for customers.",
			Intents: []string{
				"orders",
				"order_details",
				"track_order",
				"wishlist",
				"cart",
				"cart_details",
				"payment",
				"coverage",
				"category",
				"vendors",
				"go_to_orders",
				"go_to_cart",
				"go_to_products",
				"go_to_vendors",
				"go_to_settings",
				"go_to_profile",
				"go_to_home",
				"go_to_wishlist",
				"about_website",
				"website_name",
			},
		},
		RoleDelivery: {
			Persona: "You are a delivery management assistant.",
			Intents: []string{
				"orders",
				"requested_orders",
				"order_details",
				"track_order",
				"coverage",
				"report",
				"update_order_status",
				"go_to_orders",
				"go_to_requested_orders",
				"go_to_settings",
				"go_to_profile",
				"go_to_edit_profile",
				"go_to_reports",
				"go_to_chats",
				"go_to_home",
				"about_website",
				"website_name",
			},
		},
		RoleVendor: {
			Persona: "You are a smart assistant for vendors.",
			Intents: []string{
				"orders",
				"order_details",
				"products",
				"report",
				"update_order_item_status",
				"go_to_orders",
				"go_to_products",
				"go_to_chat",
				"go_to_settings",
				"go_to_profile",
				"go_to_dashboard",
				"about_website",
				"website_name",
			},
		},
		RoleAdmin: {
			Persona: "You are an assistant helping admins manage system data.",
			Intents: []string{
				"orders",
				"pending_vendors",
				"delivery_companies",
				"pending_deliveries",
				"vendors",
				"go_to_profile",
				"go_to_dashboard",
				"go_to_home",
				"go_to_vendors_mangment",
				"go_to_delivery_companies_mangment",
				"go_to_orders_mangment",
				"go_to_cms",
				"go_to_pages_mangment",
				"go_to_notification_mangment",
				"go_to_category_mangment",
				"about_website",
				"website_name",
			},
		},
	}}
}

// Load builds the catalog from defaults overridden per role by the yaml file
// at path. A missing file is not an error; a present-but-broken one is.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("read intents file: %w", err)
	}
	var spec struct {
		Roles map[string]roleSpec `yaml:"roles"`
	}
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, fmt.Errorf("parse intents file: %w", err)
	}
	for role, override := range spec.Roles {
		base, ok := c.roles[role]
		if !ok {
			// New roles from the file are accepted as-is
			c.roles[role] = override
			continue
		}
		if override.Persona != "" {
			base.Persona = override.Persona
		}
		if len(override.Intents) > 0 {
			base.Intents = override.Intents
		}
		c.roles[role] = base
	}
	return c, nil
}

func (c *Catalog) spec(role string) roleSpec {
	if s, ok := c.roles[role]; ok {
		return s
	}
	return c.roles[RoleCustomer]
}

// Allowed returns the role's ordered intent labels. Unknown roles get the
// customer catalog. The returned slice is a copy.
func (c *Catalog) Allowed(role string) []string {
	s := c.spec(role)
	out := make([]string, len(s.Intents))
	copy(out, s.Intents)
	return out
}

// Contains reports whether label is in the role's allow-list.
func (c *Catalog) Contains(role, label string) bool {
	for _, l := range c.spec(role).Intents {
		if l == label {
			return true
		}
	}
	return false
}

// Persona returns the role's fixed system-prompt fragment.
func (c *Catalog) Persona(role string) string {
	return c.spec(role).Persona
}
