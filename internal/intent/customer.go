package intent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"qwikko-assistant/internal/platform"
)

const customerApology = "Couldn't fetch data from backend."

// CustomerHandler answers customer intents: order history and tracking,
// wishlist, carts, catalog browsing, and navigation links.
type CustomerHandler struct {
	client      *platform.Client
	frontendURL string
}

func (h *CustomerHandler) Handle(ctx context.Context, intent, message, token, userID string) string {
	switch intent {
	case "orders":
		orders, err := h.client.CustomerOrders(ctx, token)
		if err != nil {
			log.Printf("[customer] orders: %v", err)
			return customerApology
		}
		if len(orders) == 0 {
			return "You have no orders yet."
		}
		lines := make([]string, 0, len(orders))
		for _, o := range orders {
			itemsCount := 0
			for _, it := range o.Items {
				itemsCount += it.Quantity
			}
			lines = append(lines, fmt.Sprintf("#%d | status: %s | total: %s | Items included in this order: %d | ordered At: %s",
				o.ID, orDefault(o.Status, "unknown"), o.TotalAmount.Format(), itemsCount, formatDate(o.CreatedAt)))
		}
		return strings.Join(lines, "\n")

	case "order_details":
		orderID := firstDigits(message)
		if orderID == "" {
			return "Please provide the order number."
		}
		order, err := h.client.CustomerOrder(ctx, token, orderID)
		if err != nil {
			log.Printf("[customer] order_details: %v", err)
			return customerApology
		}
		if order == nil {
			return fmt.Sprintf("Order #%s not found.", orderID)
		}
		return h.formatOrderDetails(orderID, order)

	case "track_order":
		orderID := firstDigits(message)
		if orderID == "" {
			return "Please provide the order number."
		}
		status, found, err := h.client.TrackOrder(ctx, token, orderID)
		if err != nil {
			log.Printf("[customer] track_order: %v", err)
			return customerApology
		}
		if !found {
			return fmt.Sprintf("Order #%s not found.", orderID)
		}
		return fmt.Sprintf("Order #%s - Status: %s", orderID, orDefault(status, "unknown"))

	case "wishlist":
		list, err := h.client.Wishlist(ctx, token)
		if err != nil {
			log.Printf("[customer] wishlist: %v", err)
			return customerApology
		}
		if len(list) == 0 {
			return "Your wishlist is empty."
		}
		lines := make([]string, 0, len(list))
		for _, p := range list {
			lines = append(lines, fmt.Sprintf("%s - %s", p.Name, usd(p.Price)))
		}
		return strings.Join(lines, "\n")

	case "cart":
		carts, err := h.client.Carts(ctx, token)
		if err != nil {
			log.Printf("[customer] cart: %v", err)
			return customerApology
		}
		if len(carts) == 0 {
			return "You have no carts."
		}
		lines := make([]string, 0, len(carts))
		for _, c := range carts {
			total := 0.0
			for _, it := range c.Items {
				total += it.Price.Or() * float64(it.Quantity)
			}
			lines = append(lines, fmt.Sprintf("Cart #%d: %d items - Total: $%.2f", c.ID, len(c.Items), total))
		}
		return strings.Join(lines, "\n")

	case "cart_details":
		cartID := firstDigits(message)
		if cartID == "" {
			return "Please provide the cart ID."
		}
		cart, err := h.client.Cart(ctx, token, cartID)
		if err != nil {
			log.Printf("[customer] cart_details: %v", err)
			return customerApology
		}
		if cart == nil || len(cart.Items) == 0 {
			return fmt.Sprintf("Cart #%s is empty.", cartID)
		}
		lines := make([]string, 0, len(cart.Items))
		for _, it := range cart.Items {
			lines = append(lines, fmt.Sprintf("%s - %s x %d", it.Name, usd(it.Price), it.Quantity))
		}
		return strings.Join(lines, "\n")

	case "payment":
		return "We accept Credit/Debit Card, PayPal, and Cash on Delivery."

	case "coverage":
		return "We deliver to Amman, Zarqa, Irbid, Aqaba, Mafraq, Balqa, Madaba, Karak, Tafilah, Ma'an, Jerash, Ajloun."

	case "category":
		categories, err := h.client.Categories(ctx, token)
		if err != nil {
			log.Printf("[customer] category: %v", err)
			return "Sorry, I couldn't fetch the categories at the moment."
		}
		if len(categories) == 0 {
			return "There are no categories available right now."
		}
		lines := make([]string, 0, len(categories))
		for i, c := range categories {
			line := fmt.Sprintf("%d. **%s**", i+1, c.Name)
			if c.Description != "" {
				line += " - " + c.Description
			}
			lines = append(lines, line)
		}
		return "**Available Categories:**\n" + strings.Join(lines, "\n") +
			"\n\nYou can mention any category name to explore its products."

	case "vendors":
		vendors, err := h.client.Stores(ctx, token)
		if err != nil {
			log.Printf("[customer] vendors: %v", err)
			return customerApology
		}
		if len(vendors) == 0 {
			return "No approved vendors found."
		}
		lines := make([]string, 0, len(vendors))
		for i, v := range vendors {
			lines = append(lines, fmt.Sprintf("%d. %s (ID: %d) - Contact: %s",
				i+1, v.StoreName, v.ID, orDefault(v.ContactEmail, "N/A")))
		}
		return strings.Join(lines, "\n")

	case "go_to_orders":
		return "Sure! You can view all your orders here:\n" + h.frontendURL + "/customer/orders"
	case "go_to_cart":
		return "Here's your shopping cart - review your items or proceed to checkout:\n" + h.frontendURL + "/customer/cart"
	case "go_to_products":
		return "Explore all available products here:\n" + h.frontendURL + "/customer/products"
	case "go_to_vendors":
		return "Browse and discover trusted vendors here:\n" + h.frontendURL + "/customer/stores"
	case "go_to_settings":
		return "Manage your account settings here:\n" + h.frontendURL + "/customer/settings"
	case "go_to_profile":
		return "View and edit your personal profile here:\n" + h.frontendURL + "/customer/profile"
	case "go_to_home":
		return "Welcome home! Visit your main dashboard here:\n" + h.frontendURL + "/customer/home"
	case "go_to_wishlist":
		return "Check out your saved products in your wishlist here:\n" + h.frontendURL + "/customer/wishlist"

	default:
		// No dynamic handler; the model answers generically
		return ""
	}
}

func (h *CustomerHandler) formatOrderDetails(orderID string, order *platform.OrderDetails) string {
	id := order.OrderID
	if id == 0 {
		id = order.ID
	}
	idStr := orderID
	if id != 0 {
		idStr = fmt.Sprintf("%d", id)
	}

	itemsCount := 0
	itemLines := make([]string, 0, len(order.Items))
	for i, it := range order.Items {
		itemsCount += it.Quantity
		name := it.ProductName
		if name == "" {
			name = it.Name
		}
		if name == "" {
			name = fmt.Sprintf("Item %d", i+1)
		}
		variant := ""
		if it.Variant != "" {
			variant = " [" + it.Variant + "]"
		}
		line := fmt.Sprintf("- %s%s - %s x %d", name, variant, usd(it.Price), it.Quantity)
		if it.Price.Valid() {
			line += fmt.Sprintf(" = $%.2f", it.Price.Value()*float64(it.Quantity))
		}
		itemLines = append(itemLines, line)
	}

	payLines := make([]string, 0, len(order.Payments))
	for _, p := range order.Payments {
		line := fmt.Sprintf("- %s: %s - %s", orDefault(p.PaymentMethod, "N/A"), usd(p.Amount), orDefault(p.Status, "N/A"))
		if p.TransactionID != "" {
			line += " (TX: " + p.TransactionID + ")"
		}
		line += " on " + formatDate(p.CreatedAt)
		payLines = append(payLines, line)
	}
	if len(payLines) == 0 {
		payLines = append(payLines, "- No payments recorded")
	}

	parts := []string{
		"Order #" + idStr,
		"Payment Status: " + orDefault(order.PaymentStatus, "unknown"),
		"Total: " + usd(order.TotalAmount),
		fmt.Sprintf("Items: %d", itemsCount),
		"Created: " + formatDate(order.CreatedAt),
		"Updated: " + formatDate(order.UpdatedAt),
		"Shipping: " + orDefault(order.ShippingAddress, "N/A"),
	}
	if len(itemLines) > 0 {
		parts = append(parts, "\nItems:\n"+strings.Join(itemLines, "\n"))
	}
	parts = append(parts, "\nPayments:\n"+strings.Join(payLines, "\n"))
	return strings.Join(parts, "\n")
}
