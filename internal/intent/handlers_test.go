package intent

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"qwikko-assistant/internal/platform"
)

func newBackend(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			t.Errorf("unexpected backend call: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}))
}

func TestCustomerOrdersReply(t *testing.T) {
	var gotAuth string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `[{"id":7,"status":"pending","total_amount":"42.50","created_at":"2025-01-15T10:30:00Z","items":[{"quantity":2},{"quantity":1}]}]`)
	}))
	defer backend.Close()

	h := &CustomerHandler{client: platform.New(backend.URL), frontendURL: "http://front"}
	reply := h.Handle(context.Background(), "orders", "show my orders", "tok-1", "u1")

	if gotAuth != "Bearer tok-1" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	for _, want := range []string{"#7", "pending", "42.50", "Items included in this order: 3"} {
		if !strings.Contains(reply, want) {
			t.Fatalf("reply missing %q:\n%s", want, reply)
		}
	}
}

func TestCustomerOrdersEmpty(t *testing.T) {
	backend := newBackend(t, map[string]string{"GET /api/customers/orders": `[]`})
	defer backend.Close()

	h := &CustomerHandler{client: platform.New(backend.URL)}
	if got := h.Handle(context.Background(), "orders", "orders", "t", "u"); got != "You have no orders yet." {
		t.Fatalf("reply = %q", got)
	}
}

func TestCustomerTrackOrder(t *testing.T) {
	backend := newBackend(t, map[string]string{
		"GET /api/customers/orders/7/track": `{"data":{"status":"shipped"}}`,
	})
	defer backend.Close()

	h := &CustomerHandler{client: platform.New(backend.URL)}
	if got := h.Handle(context.Background(), "track_order", "track order 7", "t", "u"); got != "Order #7 - Status: shipped" {
		t.Fatalf("reply = %q", got)
	}
	if got := h.Handle(context.Background(), "track_order", "track my order", "t", "u"); got != "Please provide the order number." {
		t.Fatalf("reply without id = %q", got)
	}
}

func TestCustomerBackendFailureApology(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	h := &CustomerHandler{client: platform.New(backend.URL)}
	if got := h.Handle(context.Background(), "orders", "orders", "t", "u"); got != "Couldn't fetch data from backend." {
		t.Fatalf("reply = %q", got)
	}
}

func TestCustomerNavigation(t *testing.T) {
	h := &CustomerHandler{frontendURL: "http://front"}
	got := h.Handle(context.Background(), "go_to_orders", "take me to my orders", "t", "u")
	if !strings.Contains(got, "http://front/customer/orders") {
		t.Fatalf("reply = %q", got)
	}
}

func TestDeliveryNavigation(t *testing.T) {
	h := &DeliveryHandler{frontendURL: "http://front"}
	cases := map[string]string{
		"go_to_orders":           "http://front/delivery/dashboard/orders",
		"go_to_requested_orders": "http://front/delivery/dashboard/DeliveryRequestedOrders",
		"go_to_profile":          "http://front/delivery/dashboard/getProfile",
		"go_to_edit_profile":     "http://front/delivery/dashboard/edit",
	}
	for label, wantURL := range cases {
		got := h.Handle(context.Background(), label, "take me there", "t", "u")
		if !strings.Contains(got, wantURL) {
			t.Fatalf("%s reply = %q, want link %q", label, got, wantURL)
		}
	}
}

func TestVendorUpdateOrderItemStatusArabic(t *testing.T) {
	var gotPath, gotStatus string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		gotStatus = payload["status"]
		io.WriteString(w, `{"success":true}`)
	}))
	defer backend.Close()

	h := &VendorHandler{client: platform.New(backend.URL)}
	reply := h.Handle(context.Background(), "update_order_item_status", "اقبل 15", "t", "u")

	if gotPath != "PUT /api/vendor/order-items/15/status" {
		t.Fatalf("backend call = %q", gotPath)
	}
	if gotStatus != "accepted" {
		t.Fatalf("status payload = %q", gotStatus)
	}
	if want := `Successfully updated item #15 status to "accepted".`; reply != want {
		t.Fatalf("reply = %q, want %q", reply, want)
	}
}

func TestVendorUpdateOrderItemStatusPrompts(t *testing.T) {
	h := &VendorHandler{}
	if got := h.Handle(context.Background(), "update_order_item_status", "accept the item", "t", "u"); got != "Please specify the item ID you want to update." {
		t.Fatalf("missing-id reply = %q", got)
	}
	if got := h.Handle(context.Background(), "update_order_item_status", "item 15", "t", "u"); got != "Please specify the new status ('accepted' or 'rejected')." {
		t.Fatalf("missing-status reply = %q", got)
	}
}

func TestVendorOrdersDedupesRows(t *testing.T) {
	backend := newBackend(t, map[string]string{
		"GET /api/vendor/orders": `{"data":[
			{"order_id":3,"status":"pending","total_amount":20},
			{"order_id":3,"status":"pending","total_amount":20},
			{"order_id":4,"status":"delivered","total_amount":"10.50"}]}`,
	})
	defer backend.Close()

	h := &VendorHandler{client: platform.New(backend.URL)}
	reply := h.Handle(context.Background(), "orders", "my orders", "t", "u")

	if !strings.Contains(reply, "You have 2 orders:") {
		t.Fatalf("rows not deduped:\n%s", reply)
	}
	if !strings.Contains(reply, "Total revenue from all orders: $30.50") {
		t.Fatalf("revenue wrong:\n%s", reply)
	}
}

func TestDeliveryUpdateOrderStatus(t *testing.T) {
	var gotPath, gotStatus string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		gotStatus = payload["status"]
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	h := &DeliveryHandler{client: platform.New(backend.URL)}
	reply := h.Handle(context.Background(), "update_order_status", "Update order 360 to out_for_delivery", "t", "u")

	if gotPath != "PUT /api/delivery/orders/360" {
		t.Fatalf("backend call = %q", gotPath)
	}
	if gotStatus != "out_for_delivery" {
		t.Fatalf("status payload = %q", gotStatus)
	}
	if want := "Order #360 status updated to 'out_for_delivery'."; reply != want {
		t.Fatalf("reply = %q, want %q", reply, want)
	}
}

func TestDeliveryUpdateOrderStatusNeedsBoth(t *testing.T) {
	h := &DeliveryHandler{}
	got := h.Handle(context.Background(), "update_order_status", "update my order please", "t", "u")
	if !strings.Contains(got, "Please specify both order ID and new status.") {
		t.Fatalf("reply = %q", got)
	}
}

func TestDeliveryOrdersPaymentFilter(t *testing.T) {
	backend := newBackend(t, map[string]string{
		"GET /api/customers/delivery/accepted-orders": `{"data":[
			{"id":1,"order_status":"accepted","payment_status":"paid","total_amount":12},
			{"id":2,"order_status":"accepted","payment_status":"pending","final_amount":"8.00"}]}`,
	})
	defer backend.Close()

	h := &DeliveryHandler{client: platform.New(backend.URL)}
	reply := h.Handle(context.Background(), "orders", "orders where payment status is paid", "t", "u")

	if !strings.Contains(reply, `payment status "paid"`) || !strings.Contains(reply, "#1") {
		t.Fatalf("reply = %q", reply)
	}
	if strings.Contains(reply, "#2") {
		t.Fatalf("unpaid order leaked into filtered reply:\n%s", reply)
	}

	reply = h.Handle(context.Background(), "orders", "orders where payment status is refunded", "t", "u")
	if want := `You currently have no orders with the payment status "refunded".`; reply != want {
		t.Fatalf("reply = %q, want %q", reply, want)
	}
}

func TestDeliveryReportFormatting(t *testing.T) {
	backend := newBackend(t, map[string]string{
		"GET /api/delivery/reports": `{"report":{
			"totals":{"total_orders":12,"total_amount":"310.75"},
			"payment_status":{"pending":2,"paid":10},
			"statuses":{"delivered":9,"out_for_delivery":3},
			"top_customers":[{"customer_email":"a@x.com","orders_count":4,"total_amount":120}],
			"top_vendors":[{"store_name":"Fresh Mart","orders_count":6,"revenue":"200.00"}]}}`,
	})
	defer backend.Close()

	h := &DeliveryHandler{client: platform.New(backend.URL)}
	reply := h.Handle(context.Background(), "report", "report for the last 30 days", "t", "u")

	for _, want := range []string{
		"Delivery Report (Last 30 days)",
		"Total Orders: 12",
		"Total Revenue: $310.75",
		"- paid: 10",
		"1. a@x.com - 4 orders ($120.00)",
		"1. Fresh Mart - 6 orders ($200.00)",
	} {
		if !strings.Contains(reply, want) {
			t.Fatalf("report missing %q:\n%s", want, reply)
		}
	}
}

func TestAdminVendorsEmpty(t *testing.T) {
	backend := newBackend(t, map[string]string{"GET /api/admin/vendors": `{"data":[]}`})
	defer backend.Close()

	h := &AdminHandler{client: platform.New(backend.URL)}
	if got := h.Handle(context.Background(), "vendors", "list vendors", "t", "u"); got != "No vendors found." {
		t.Fatalf("reply = %q", got)
	}
}

func TestAdminOrderSummary(t *testing.T) {
	backend := newBackend(t, map[string]string{
		"GET /api/admin/orders": `{"data":[{"status":"pending"},{"status":"pending"},{"status":"delivered"},{"status":"accepted"}]}`,
	})
	defer backend.Close()

	h := &AdminHandler{client: platform.New(backend.URL)}
	reply := h.Handle(context.Background(), "orders", "order summary", "t", "u")
	if want := "Order Summary\nTotal Orders: 4\nPending: 2\nAccepted: 1\nDelivered: 1"; reply != want {
		t.Fatalf("reply = %q, want %q", reply, want)
	}
}

func TestRegistryAboutWebsite(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("title") == "about_website" {
			io.WriteString(w, `[{"content":"About Us@We connect stores and customers * fast delivery * fair prices"}]`)
			return
		}
		io.WriteString(w, `[]`)
	}))
	defer backend.Close()

	reg := NewRegistry(platform.New(backend.URL), "http://front", "Qwikko")
	reply := reg.Handle(context.Background(), RoleCustomer, "about_website", "about", "t", "u")

	for _, want := range []string{"## About Us", "- fast delivery", "- fair prices"} {
		if !strings.Contains(reply, want) {
			t.Fatalf("about reply missing %q:\n%s", want, reply)
		}
	}
}

func TestRegistryAboutWebsiteUnavailable(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	}))
	defer backend.Close()

	reg := NewRegistry(platform.New(backend.URL), "http://front", "Qwikko")
	got := reg.Handle(context.Background(), RoleCustomer, "about_website", "about", "t", "u")
	if got != "Website information is not available right now." {
		t.Fatalf("reply = %q", got)
	}
}

func TestRegistryWebsiteName(t *testing.T) {
	reg := NewRegistry(nil, "http://front", "Qwikko")
	reply := reg.Handle(context.Background(), RoleVendor, "website_name", "name?", "t", "u")

	if !strings.Contains(reply, "**Website/brand name:** Qwikko") {
		t.Fatalf("brand line missing:\n%s", reply)
	}
	if !strings.Contains(reply, "For vendors") {
		t.Fatalf("vendor role note missing:\n%s", reply)
	}
}
