package intent

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"qwikko-assistant/internal/platform"
)

const deliveryApology = "Failed to fetch delivery data."

var (
	paymentFilterRe = regexp.MustCompile(`(?i)payment status (is|=)?\s*(\w+)`)
	statusFilterRe  = regexp.MustCompile(`(?i)status (is|=)?\s*([\w\s]+)`)
	reportDaysRe    = regexp.MustCompile(`(?i)last\s*(\d+)\s*days`)
	statusUpdateRe  = regexp.MustCompile(`(?i)order\s*(\d+).*?(accepted|processing|out_for_delivery|delivered)`)
)

// DeliveryHandler answers delivery-company intents: accepted and requested
// orders with free-form status filters, per-order tracking, coverage areas,
// periodic reports, and order status updates.
type DeliveryHandler struct {
	client      *platform.Client
	frontendURL string
}

func (h *DeliveryHandler) Handle(ctx context.Context, intent, message, token, userID string) string {
	switch intent {
	case "orders":
		orders, err := h.client.AcceptedOrders(ctx, token)
		if err != nil {
			log.Printf("[delivery] orders: %v", err)
			return deliveryApology
		}
		if len(orders) == 0 {
			return "You have no delivery orders currently."
		}
		return h.formatAcceptedOrders(orders, message)

	case "requested_orders":
		orders, err := h.client.RequestedOrders(ctx, token)
		if err != nil {
			log.Printf("[delivery] requested_orders: %v", err)
			return deliveryApology
		}
		if len(orders) == 0 {
			return "You currently have no requested delivery orders."
		}
		return h.formatRequestedOrders(orders, message)

	case "track_order", "order_details":
		orderID := firstDigits(message)
		if orderID == "" {
			return "Please provide the order number."
		}
		tracking, err := h.client.Tracking(ctx, token, orderID)
		if err != nil {
			log.Printf("[delivery] tracking: %v", err)
			return deliveryApology
		}
		if tracking == nil {
			return fmt.Sprintf("Order #%s not found.", orderID)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Order #%d - Status: %s, Payment: %s\nItems:\n",
			tracking.OrderID, orDefault(tracking.Status, "unknown"), orDefault(tracking.PaymentStatus, "unknown"))
		for i, it := range tracking.Items {
			fmt.Fprintf(&b, "%d. %s x%d - $%.2f (Vendor: %s)\n",
				i+1, it.ProductName, it.Quantity, it.ItemPrice.Or(), orDefault(it.VendorName, "N/A"))
		}
		return strings.TrimRight(b.String(), "\n")

	case "coverage":
		rows, err := h.client.Coverage(ctx, token)
		if err != nil {
			log.Printf("[delivery] coverage: %v", err)
			return deliveryApology
		}
		if len(rows) == 0 {
			return "You currently have no coverage areas set."
		}
		seen := make(map[string]bool)
		var cities []string
		for _, r := range rows {
			if r.City == "" || seen[r.City] {
				continue
			}
			seen[r.City] = true
			cities = append(cities, r.City)
		}
		lines := make([]string, 0, len(cities))
		for i, city := range cities {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, city))
		}
		return "Your coverage areas:\n" + strings.Join(lines, "\n")

	case "report":
		days := 7
		if m := reportDaysRe.FindStringSubmatch(message); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				days = n
			}
		}
		report, err := h.client.Report(ctx, token, days)
		if err != nil {
			log.Printf("[delivery] report: %v", err)
			return deliveryApology
		}
		if report == nil {
			return "No report data available."
		}
		return formatDeliveryReport(report, days)

	case "update_order_status":
		m := statusUpdateRe.FindStringSubmatch(strings.ToLower(message))
		if m == nil {
			return "Please specify both order ID and new status. Example: 'Update order 360 to out_for_delivery'"
		}
		orderID, status := m[1], m[2]
		if err := h.client.UpdateDeliveryOrderStatus(ctx, token, orderID, status); err != nil {
			log.Printf("[delivery] update_order_status: %v", err)
			return deliveryApology
		}
		return fmt.Sprintf("Order #%s status updated to '%s'.", orderID, status)

	case "go_to_orders":
		return "Sure! You can view and manage all your delivery orders here:\n" + h.frontendURL + "/delivery/dashboard/orders"
	case "go_to_requested_orders":
		return "These are the delivery requests waiting for your action:\n" + h.frontendURL + "/delivery/dashboard/DeliveryRequestedOrders"
	case "go_to_profile":
		return "Here you can view and manage your delivery profile details:\n" + h.frontendURL + "/delivery/dashboard/getProfile"
	case "go_to_reports":
		return "You can view performance reports and delivery statistics here:\n" + h.frontendURL + "/delivery/dashboard/reports"
	case "go_to_home":
		return "Welcome back! Here's your main home dashboard:\n" + h.frontendURL + "/delivery/dashboard/home"
	case "go_to_settings":
		return "You can manage your account preferences and settings here:\n" + h.frontendURL + "/delivery/dashboard/settings"
	case "go_to_edit_profile":
		return "You can update your personal information and profile details here:\n" + h.frontendURL + "/delivery/dashboard/edit"
	case "go_to_chats":
		return "Here are your delivery chats and conversations:\n" + h.frontendURL + "/delivery/dashboard/chat"

	default:
		return ""
	}
}

func (h *DeliveryHandler) formatAcceptedOrders(orders []platform.DeliveryOrder, message string) string {
	header := "Delivery Orders:\n"
	filtered := orders

	if m := paymentFilterRe.FindStringSubmatch(message); m != nil {
		want := strings.ToLower(m[2])
		filtered = nil
		for _, o := range orders {
			if strings.ToLower(o.PaymentStatus) == want {
				filtered = append(filtered, o)
			}
		}
		if len(filtered) == 0 {
			return fmt.Sprintf("You currently have no orders with the payment status %q.", want)
		}
		header = fmt.Sprintf("Here are your orders with payment status %q:\n\n", want)
	} else if m := statusFilterRe.FindStringSubmatch(message); m != nil {
		want := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(m[2]))), "_")
		filtered = nil
		for _, o := range orders {
			if strings.ToLower(o.OrderStatus) == want {
				filtered = append(filtered, o)
			}
		}
		if len(filtered) == 0 {
			return fmt.Sprintf("You have no orders with status %q.", strings.ReplaceAll(want, "_", " "))
		}
		header = fmt.Sprintf("Orders with status %q:\n\n", want)
	}

	lines := make([]string, 0, len(filtered))
	for _, o := range filtered {
		lines = append(lines, fmt.Sprintf("#%d - %s - $%.2f",
			o.ID, orDefault(o.OrderStatus, "unknown"), o.TotalAmount.Or(o.FinalAmount, o.TotalWithShipping)))
	}
	return header + strings.Join(lines, "\n")
}

func (h *DeliveryHandler) formatRequestedOrders(orders []platform.DeliveryOrder, message string) string {
	header := "Requested Delivery Orders:\n"
	filtered := orders

	if m := statusFilterRe.FindStringSubmatch(message); m != nil {
		want := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(m[2]))), "_")
		filtered = nil
		for _, o := range orders {
			if strings.ToLower(o.DeliveryRequestStatus) == want {
				filtered = append(filtered, o)
			}
		}
		if len(filtered) == 0 {
			return fmt.Sprintf("You have no requested orders with status %q.", strings.ReplaceAll(want, "_", " "))
		}
		header = fmt.Sprintf("Requested orders with status %q:\n\n", want)
	}

	lines := make([]string, 0, len(filtered))
	for _, o := range filtered {
		lines = append(lines, fmt.Sprintf("#%d - request: %s - order: %s - $%.2f",
			o.ID, orDefault(o.DeliveryRequestStatus, "unknown"), orDefault(o.OrderStatus, "unknown"),
			o.TotalAmount.Or(o.FinalAmount)))
	}
	return header + strings.Join(lines, "\n")
}

func formatDeliveryReport(report *platform.DeliveryReport, days int) string {
	var b strings.Builder
	plural := "days"
	if days == 1 {
		plural = "day"
	}
	fmt.Fprintf(&b, "Delivery Report (Last %d %s)\n", days, plural)
	fmt.Fprintf(&b, "Total Orders: %d\n", report.Totals.TotalOrders)
	fmt.Fprintf(&b, "Total Revenue: $%.2f\n", report.Totals.TotalAmount.Or())

	writeCounts := func(title string, counts map[string]int) {
		if len(counts) == 0 {
			return
		}
		b.WriteString("\n" + title + "\n")
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %d\n", k, counts[k])
		}
	}
	writeCounts("Payment Status:", report.PaymentStatus)
	writeCounts("Order Statuses:", report.Statuses)

	if len(report.TopCustomers) > 0 {
		b.WriteString("\nTop Customers:\n")
		for i, c := range report.TopCustomers {
			fmt.Fprintf(&b, "%d. %s - %d orders ($%.2f)\n",
				i+1, orDefault(c.CustomerEmail, "N/A"), c.OrdersCount, c.TotalAmount.Or())
		}
	}
	if len(report.TopVendors) > 0 {
		b.WriteString("\nTop Vendors:\n")
		for i, v := range report.TopVendors {
			fmt.Fprintf(&b, "%d. %s - %d orders ($%.2f)\n",
				i+1, orDefault(v.StoreName, "N/A"), v.OrdersCount, v.Revenue.Or())
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
