package intent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"qwikko-assistant/internal/platform"
)

const vendorApology = "Failed to fetch vendor data."

// VendorHandler answers vendor intents: order rows, product inventory,
// sales reports, and order item status updates.
type VendorHandler struct {
	client      *platform.Client
	frontendURL string
}

func (h *VendorHandler) Handle(ctx context.Context, intent, message, token, userID string) string {
	switch intent {
	case "orders":
		rows, err := h.client.VendorOrders(ctx, token)
		if err != nil {
			log.Printf("[vendor] orders: %v", err)
			return vendorApology
		}
		if len(rows) == 0 {
			return "You don't have any orders yet."
		}
		// The endpoint returns one row per item, dedupe by order id.
		seen := make(map[int]bool)
		var unique []platform.VendorOrderRow
		for _, r := range rows {
			if seen[r.OrderID] {
				continue
			}
			seen[r.OrderID] = true
			unique = append(unique, r)
		}
		total := 0.0
		lines := make([]string, 0, len(unique))
		for i, r := range unique {
			total += r.TotalAmount.Or()
			lines = append(lines, fmt.Sprintf("%d. Order #%d\n   Status: %s\n   Price: $%.2f",
				i+1, r.OrderID, orDefault(r.Status, "unknown"), r.TotalAmount.Or()))
		}
		return fmt.Sprintf("You have %d orders:\n\n%s\n\nTotal revenue from all orders: $%.2f",
			len(unique), strings.Join(lines, "\n\n"), total)

	case "products":
		products, err := h.client.VendorProducts(ctx, token)
		if err != nil {
			log.Printf("[vendor] products: %v", err)
			return vendorApology
		}
		if len(products) == 0 {
			return "You don't have any products listed yet."
		}
		total := 0.0
		lines := make([]string, 0, len(products))
		for i, p := range products {
			total += p.Price.Or()
			stock := "N/A"
			if p.StockQuantity != nil {
				stock = fmt.Sprintf("%d", *p.StockQuantity)
			}
			status := "Inactive"
			if p.IsActive {
				status = "Active"
			}
			lines = append(lines, fmt.Sprintf("%d. %s\n   Price: $%.2f\n   Stock: %s\n   Status: %s",
				i+1, p.Name, p.Price.Or(), stock, status))
		}
		return fmt.Sprintf("You have %d products:\n\n%s\n\nTotal product value: $%.2f",
			len(products), strings.Join(lines, "\n\n"), total)

	case "report":
		report, err := h.client.VendorReport(ctx, token, userID)
		if err != nil {
			log.Printf("[vendor] report: %v", err)
			return vendorApology
		}
		if report == nil {
			return "No report data found yet."
		}
		return fmt.Sprintf("Store Name: %s\nYour Total Orders: %d\nYour Total Sales: $%.2f",
			orDefault(report.StoreName, "Your Store"), report.TotalOrders, report.TotalSales.Or())

	case "update_order_item_status":
		itemID, status := parseItemStatusUpdate(message)
		if itemID == "" {
			return "Please specify the item ID you want to update."
		}
		if status == "" {
			return "Please specify the new status ('accepted' or 'rejected')."
		}
		result, err := h.client.UpdateOrderItemStatus(ctx, token, itemID, status)
		if err != nil {
			log.Printf("[vendor] update_order_item_status: %v", err)
			return vendorApology
		}
		if result.Success {
			return fmt.Sprintf("Successfully updated item #%s status to %q.", itemID, status)
		}
		return fmt.Sprintf("Failed to update item #%s: %s", itemID, orDefault(result.Message, "Unknown error"))

	case "go_to_orders":
		return "You can view your orders here:\n" + h.frontendURL + "/vendor/orders"
	case "go_to_products":
		return "Manage your products here:\n" + h.frontendURL + "/vendor/products"
	case "go_to_chat":
		return "Open your conversations here:\n" + h.frontendURL + "/vendor/chat"
	case "go_to_settings":
		return "Manage your store settings here:\n" + h.frontendURL + "/vendor/settings"
	case "go_to_profile":
		return "View and edit your store profile here:\n" + h.frontendURL + "/vendor/profile"
	case "go_to_dashboard":
		return "Your vendor dashboard is here:\n" + h.frontendURL + "/vendor/dashboard"

	default:
		return ""
	}
}

// parseItemStatusUpdate pulls the item id (first all-digit token) and the
// target status out of a free-form update request, in English or Arabic.
func parseItemStatusUpdate(message string) (itemID, status string) {
	for _, tok := range strings.Fields(message) {
		if tok == firstDigits(tok) && tok != "" {
			itemID = tok
			break
		}
	}
	lower := strings.ToLower(message)
	if strings.Contains(lower, "accept") || strings.Contains(lower, "approve") || strings.Contains(lower, "اقبل") {
		status = "accepted"
	}
	if strings.Contains(lower, "reject") || strings.Contains(lower, "رفض") || strings.Contains(lower, "ارفض") {
		status = "rejected"
	}
	return itemID, status
}
