package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a small REST client for the commerce platform API, tailored to
// the lookups the intent handlers need. Response envelopes vary per endpoint:
// some return bare arrays/objects, others wrap them in {data: ...}.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func New(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) do(ctx context.Context, token, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient.Do(req)
}

func (c *Client) getBytes(ctx context.Context, token, path string) ([]byte, error) {
	resp, err := c.do(ctx, token, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("platform api %s failed: %s", path, strings.TrimSpace(string(b)))
	}
	return b, nil
}

func (c *Client) getJSON(ctx context.Context, token, path string, out any) error {
	b, err := c.getBytes(ctx, token, path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (c *Client) putJSON(ctx context.Context, token, path string, payload, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, token, http.MethodPut, path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("platform api %s failed: %s", path, strings.TrimSpace(string(rb)))
	}
	if out != nil && len(rb) > 0 {
		// Best-effort decode; some endpoints reply with an empty body
		_ = json.Unmarshal(rb, out)
	}
	return nil
}

// ---- Customer ----

func (c *Client) CustomerOrders(ctx context.Context, token string) ([]Order, error) {
	var out []Order
	if err := c.getJSON(ctx, token, "/api/customers/orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CustomerOrder(ctx context.Context, token, orderID string) (*OrderDetails, error) {
	var resp struct {
		Data *OrderDetails `json:"data"`
	}
	if err := c.getJSON(ctx, token, "/api/customers/orders/"+url.PathEscape(orderID), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// TrackOrder tolerates both {data:{status}} and {status} response shapes.
func (c *Client) TrackOrder(ctx context.Context, token, orderID string) (string, bool, error) {
	b, err := c.getBytes(ctx, token, "/api/customers/orders/"+url.PathEscape(orderID)+"/track")
	if err != nil {
		return "", false, err
	}
	var resp struct {
		Status string `json:"status"`
		Data   *struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(b, &resp); err != nil {
		return "", false, err
	}
	if resp.Data != nil {
		return resp.Data.Status, true, nil
	}
	if resp.Status != "" {
		return resp.Status, true, nil
	}
	return "", false, nil
}

func (c *Client) Wishlist(ctx context.Context, token string) ([]WishlistItem, error) {
	var out []WishlistItem
	if err := c.getJSON(ctx, token, "/api/customers/wishlist", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Carts(ctx context.Context, token string) ([]Cart, error) {
	var out []Cart
	if err := c.getJSON(ctx, token, "/api/customers/cart", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Cart(ctx context.Context, token, cartID string) (*Cart, error) {
	var out Cart
	if err := c.getJSON(ctx, token, "/api/customers/cart/"+url.PathEscape(cartID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Categories tolerates both {data:[...]} and bare array shapes.
func (c *Client) Categories(ctx context.Context, token string) ([]Category, error) {
	b, err := c.getBytes(ctx, token, "/api/categories")
	if err != nil {
		return nil, err
	}
	var env struct {
		Data []Category `json:"data"`
	}
	if err := json.Unmarshal(b, &env); err == nil && env.Data != nil {
		return env.Data, nil
	}
	var bare []Category
	if err := json.Unmarshal(b, &bare); err != nil {
		return nil, err
	}
	return bare, nil
}

func (c *Client) Stores(ctx context.Context, token string) ([]Store, error) {
	var resp struct {
		Data []Store `json:"data"`
	}
	if err := c.getJSON(ctx, token, "/api/vendor/stores", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ---- Vendor ----

func (c *Client) VendorOrders(ctx context.Context, token string) ([]VendorOrderRow, error) {
	var resp struct {
		Data []VendorOrderRow `json:"data"`
	}
	if err := c.getJSON(ctx, token, "/api/vendor/orders", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) VendorProducts(ctx context.Context, token string) ([]VendorProduct, error) {
	var resp struct {
		Data []VendorProduct `json:"data"`
	}
	if err := c.getJSON(ctx, token, "/api/vendor/products", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) VendorReport(ctx context.Context, token, userID string) (*VendorReport, error) {
	var resp struct {
		Data *VendorReport `json:"data"`
	}
	if err := c.getJSON(ctx, token, "/api/vendor/reports/"+url.PathEscape(userID), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) UpdateOrderItemStatus(ctx context.Context, token, itemID, status string) (*UpdateResult, error) {
	var out UpdateResult
	path := "/api/vendor/order-items/" + url.PathEscape(itemID) + "/status"
	if err := c.putJSON(ctx, token, path, map[string]string{"status": status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- Delivery ----

func (c *Client) AcceptedOrders(ctx context.Context, token string) ([]DeliveryOrder, error) {
	var resp struct {
		Data []DeliveryOrder `json:"data"`
	}
	if err := c.getJSON(ctx, token, "/api/customers/delivery/accepted-orders", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) RequestedOrders(ctx context.Context, token string) ([]DeliveryOrder, error) {
	var resp struct {
		Data []DeliveryOrder `json:"data"`
	}
	if err := c.getJSON(ctx, token, "/api/customers/delivery/requested-orders", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) Tracking(ctx context.Context, token, orderID string) (*Tracking, error) {
	var out Tracking
	if err := c.getJSON(ctx, token, "/api/delivery/tracking/"+url.PathEscape(orderID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Coverage(ctx context.Context, token string) ([]CoverageRow, error) {
	var out []CoverageRow
	if err := c.getJSON(ctx, token, "/api/delivery/coverage", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Report(ctx context.Context, token string, days int) (*DeliveryReport, error) {
	var resp struct {
		Report *DeliveryReport `json:"report"`
	}
	if err := c.getJSON(ctx, token, fmt.Sprintf("/api/delivery/reports?days=%d", days), &resp); err != nil {
		return nil, err
	}
	return resp.Report, nil
}

func (c *Client) UpdateDeliveryOrderStatus(ctx context.Context, token, orderID, status string) error {
	path := "/api/delivery/orders/" + url.PathEscape(orderID)
	return c.putJSON(ctx, token, path, map[string]string{"status": status}, nil)
}

// ---- Admin ----

func (c *Client) AdminOrders(ctx context.Context, token string) ([]AdminOrder, error) {
	var resp struct {
		Data []AdminOrder `json:"data"`
	}
	if err := c.getJSON(ctx, token, "/api/admin/orders", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) AdminVendors(ctx context.Context, token string) ([]AdminVendor, error) {
	var resp struct {
		Data []AdminVendor `json:"data"`
	}
	if err := c.getJSON(ctx, token, "/api/admin/vendors", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) PendingVendors(ctx context.Context, token string) ([]PendingVendor, error) {
	var resp struct {
		Data []PendingVendor `json:"data"`
	}
	if err := c.getJSON(ctx, token, "/api/admin/vendors/pending", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) DeliveryCompanies(ctx context.Context, token string) ([]DeliveryCompany, error) {
	var resp struct {
		Data []DeliveryCompany `json:"data"`
	}
	if err := c.getJSON(ctx, token, "/api/admin/delivery-companies", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) PendingDeliveries(ctx context.Context, token string) ([]DeliveryCompany, error) {
	var resp struct {
		Data []DeliveryCompany `json:"data"`
	}
	if err := c.getJSON(ctx, token, "/api/admin/deliveries/pending", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ---- CMS ----

// CMSByTitle fetches one CMS entry; the endpoint answers with either a bare
// array or an {items:[...]} wrapper.
func (c *Client) CMSByTitle(ctx context.Context, cmsType, title string) (*CMSItem, error) {
	q := url.Values{}
	q.Set("type", cmsType)
	q.Set("title", title)
	b, err := c.getBytes(ctx, "", "/api/cms?"+q.Encode())
	if err != nil {
		return nil, err
	}
	var bare []CMSItem
	if err := json.Unmarshal(b, &bare); err == nil {
		if len(bare) == 0 {
			return nil, nil
		}
		return &bare[0], nil
	}
	var wrapped struct {
		Items []CMSItem `json:"items"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return nil, err
	}
	if len(wrapped.Items) == 0 {
		return nil, nil
	}
	return &wrapped.Items[0], nil
}
