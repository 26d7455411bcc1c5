package platform

import (
	"strconv"
	"strings"
)

// Amount is a numeric JSON field that may arrive as a number, a numeric
// string, or null depending on the endpoint. Missing values format as "N/A"
// instead of erroring.
type Amount struct {
	val float64
	ok  bool
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	a.val = v
	a.ok = true
	return nil
}

func (a Amount) Valid() bool { return a.ok }

func (a Amount) Value() float64 { return a.val }

// Or returns the first valid value among the receiver and fallbacks, or 0.
func (a Amount) Or(fallbacks ...Amount) float64 {
	if a.ok {
		return a.val
	}
	for _, f := range fallbacks {
		if f.ok {
			return f.val
		}
	}
	return 0
}

// Format renders the value with two decimals, or "N/A" when absent.
func (a Amount) Format() string {
	if !a.ok {
		return "N/A"
	}
	return strconv.FormatFloat(a.val, 'f', 2, 64)
}

type OrderItem struct {
	ProductName string `json:"product_name"`
	Name        string `json:"name"`
	Price       Amount `json:"price"`
	Quantity    int    `json:"quantity"`
	Variant     string `json:"variant"`
}

type Order struct {
	ID          int         `json:"id"`
	Status      string      `json:"status"`
	TotalAmount Amount      `json:"total_amount"`
	CreatedAt   string      `json:"created_at"`
	Items       []OrderItem `json:"items"`
}

type Payment struct {
	Amount        Amount `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	CreatedAt     string `json:"created_at"`
}

type OrderDetails struct {
	OrderID         int         `json:"order_id"`
	ID              int         `json:"id"`
	TotalAmount     Amount      `json:"total_amount"`
	PaymentStatus   string      `json:"payment_status"`
	ShippingAddress string      `json:"shipping_address"`
	CreatedAt       string      `json:"created_at"`
	UpdatedAt       string      `json:"updated_at"`
	Items           []OrderItem `json:"items"`
	Payments        []Payment   `json:"payments"`
}

type WishlistItem struct {
	Name  string `json:"name"`
	Price Amount `json:"price"`
}

type CartItem struct {
	Name     string `json:"name"`
	Price    Amount `json:"price"`
	Quantity int    `json:"quantity"`
}

type Cart struct {
	ID    int        `json:"id"`
	Items []CartItem `json:"items"`
}

type Category struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Store struct {
	ID           int    `json:"id"`
	StoreName    string `json:"store_name"`
	ContactEmail string `json:"contact_email"`
}

// VendorOrderRow is one row of the vendor orders view; the endpoint returns
// one row per order item, so rows repeat order_id.
type VendorOrderRow struct {
	OrderID     int    `json:"order_id"`
	Status      string `json:"status"`
	TotalAmount Amount `json:"total_amount"`
}

type VendorProduct struct {
	Name          string `json:"name"`
	Price         Amount `json:"price"`
	StockQuantity *int   `json:"stock_quantity"`
	IsActive      bool   `json:"is_active"`
}

type VendorReport struct {
	StoreName   string `json:"store_name"`
	TotalOrders int    `json:"total_orders"`
	TotalSales  Amount `json:"total_sales"`
}

type UpdateResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type DeliveryOrder struct {
	ID                    int    `json:"id"`
	OrderStatus           string `json:"order_status"`
	PaymentStatus         string `json:"payment_status"`
	DeliveryRequestStatus string `json:"delivery_request_status"`
	TotalAmount           Amount `json:"total_amount"`
	FinalAmount           Amount `json:"final_amount"`
	TotalWithShipping     Amount `json:"total_with_shipping"`
}

type TrackingItem struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	ItemPrice   Amount `json:"item_price"`
	VendorName  string `json:"vendor_name"`
}

type Tracking struct {
	OrderID       int            `json:"order_id"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"payment_status"`
	Items         []TrackingItem `json:"items"`
}

type CoverageRow struct {
	City string `json:"city"`
}

type ReportTotals struct {
	TotalOrders int    `json:"total_orders"`
	TotalAmount Amount `json:"total_amount"`
}

type TopCustomer struct {
	CustomerEmail string `json:"customer_email"`
	OrdersCount   int    `json:"orders_count"`
	TotalAmount   Amount `json:"total_amount"`
}

type TopVendor struct {
	StoreName   string `json:"store_name"`
	OrdersCount int    `json:"orders_count"`
	Revenue     Amount `json:"revenue"`
}

type DeliveryReport struct {
	Totals        ReportTotals   `json:"totals"`
	PaymentStatus map[string]int `json:"payment_status"`
	Statuses      map[string]int `json:"statuses"`
	TopCustomers  []TopCustomer  `json:"top_customers"`
	TopVendors    []TopVendor    `json:"top_vendors"`
}

type AdminOrder struct {
	Status string `json:"status"`
}

type AdminVendor struct {
	VendorID  int    `json:"vendor_id"`
	StoreName string `json:"store_name"`
	Status    string `json:"status"`
	UserID    int    `json:"user_id"`
}

type PendingVendor struct {
	ID        int    `json:"id"`
	StoreName string `json:"store_name"`
	OwnerName string `json:"owner_name"`
}

type DeliveryCompany struct {
	CompanyID   int    `json:"company_id"`
	CompanyName string `json:"company_name"`
	Status      string `json:"status"`
}

type CMSItem struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}
