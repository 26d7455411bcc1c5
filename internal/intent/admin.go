package intent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"qwikko-assistant/internal/platform"
)

const adminApology = "Failed to fetch admin data."

// AdminHandler answers admin intents: platform-wide order summaries and
// vendor and delivery company management views.
type AdminHandler struct {
	client      *platform.Client
	frontendURL string
}

func (h *AdminHandler) Handle(ctx context.Context, intent, message, token, userID string) string {
	switch intent {
	case "orders":
		orders, err := h.client.AdminOrders(ctx, token)
		if err != nil {
			log.Printf("[admin] orders: %v", err)
			return adminApology
		}
		if len(orders) == 0 {
			return "No orders found."
		}
		var pending, accepted, delivered int
		for _, o := range orders {
			switch strings.ToLower(o.Status) {
			case "pending":
				pending++
			case "accepted":
				accepted++
			case "delivered":
				delivered++
			}
		}
		return fmt.Sprintf("Order Summary\nTotal Orders: %d\nPending: %d\nAccepted: %d\nDelivered: %d",
			len(orders), pending, accepted, delivered)

	case "vendors":
		vendors, err := h.client.AdminVendors(ctx, token)
		if err != nil {
			log.Printf("[admin] vendors: %v", err)
			return adminApology
		}
		if len(vendors) == 0 {
			return "No vendors found."
		}
		lines := make([]string, 0, len(vendors))
		for i, v := range vendors {
			lines = append(lines, fmt.Sprintf("%d. %s (ID: %d) - Status: %s - Owner ID: %d",
				i+1, v.StoreName, v.VendorID, orDefault(v.Status, "unknown"), v.UserID))
		}
		return strings.Join(lines, "\n")

	case "pending_vendors":
		vendors, err := h.client.PendingVendors(ctx, token)
		if err != nil {
			log.Printf("[admin] pending_vendors: %v", err)
			return adminApology
		}
		if len(vendors) == 0 {
			return "No pending vendors."
		}
		lines := make([]string, 0, len(vendors))
		for i, v := range vendors {
			lines = append(lines, fmt.Sprintf("%d. %s (ID: %d) - Owner: %s",
				i+1, v.StoreName, v.ID, orDefault(v.OwnerName, "N/A")))
		}
		return strings.Join(lines, "\n")

	case "delivery_companies":
		companies, err := h.client.DeliveryCompanies(ctx, token)
		if err != nil {
			log.Printf("[admin] delivery_companies: %v", err)
			return adminApology
		}
		if len(companies) == 0 {
			return "No delivery companies."
		}
		lines := make([]string, 0, len(companies))
		for i, c := range companies {
			lines = append(lines, fmt.Sprintf("%d. %s (ID: %d)", i+1, c.CompanyName, c.CompanyID))
		}
		return strings.Join(lines, "\n")

	case "pending_deliveries":
		companies, err := h.client.PendingDeliveries(ctx, token)
		if err != nil {
			log.Printf("[admin] pending_deliveries: %v", err)
			return adminApology
		}
		if len(companies) == 0 {
			return "No pending delivery companies."
		}
		lines := make([]string, 0, len(companies))
		for i, c := range companies {
			lines = append(lines, fmt.Sprintf("%d. %s (ID: %d) - Status: %s",
				i+1, c.CompanyName, c.CompanyID, orDefault(c.Status, "pending")))
		}
		return strings.Join(lines, "\n")

	case "go_to_profile":
		return "View your admin profile here:\n" + h.frontendURL + "/adminProfile"
	case "go_to_dashboard", "go_to_home":
		return "Your admin dashboard is here:\n" + h.frontendURL + "/adminHome"
	case "go_to_vendors_mangment":
		return "Manage vendors here:\n" + h.frontendURL + "/adminVendors"
	case "go_to_delivery_companies_mangment":
		return "Manage delivery companies here:\n" + h.frontendURL + "/adminDelivery"
	case "go_to_orders_mangment":
		return "View all platform orders here:\n" + h.frontendURL + "/adminOrders"
	case "go_to_cms", "go_to_pages_mangment":
		return "Manage site content here:\n" + h.frontendURL + "/adminCms"
	case "go_to_notification_mangment":
		return "Manage notifications here:\n" + h.frontendURL + "/adminCms"
	case "go_to_category_mangment":
		return "Manage categories here:\n" + h.frontendURL + "/adminCms"

	default:
		return ""
	}
}
