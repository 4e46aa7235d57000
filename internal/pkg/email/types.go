// internal/pkg/email/types.go
package email

import (
	"time"
)

// EmailType represents the type of email being sent
type EmailType string

const (
	EmailTypeOrderConfirmation EmailType = "order_confirmation"
	EmailTypeOrderStatusUpdate EmailType = "order_status_update"
	EmailTypeStockAlert        EmailType = "stock_alert"
)

// Email represents an email message
type Email struct {
	To          []string               `json:"to"`
	CC          []string               `json:"cc,omitempty"`
	BCC         []string               `json:"bcc,omitempty"`
	Subject     string                 `json:"subject"`
	HTMLContent string                 `json:"html_content"`
	TextContent string                 `json:"text_content,omitempty"`
	Type        EmailType              `json:"type"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// EmailTemplateData contains common data for all email templates
type EmailTemplateData struct {
	SiteName     string `json:"site_name"`
	SiteURL      string `json:"site_url"`
	CustomerName string `json:"customer_name"`
	Year         int    `json:"year"`
}

// OrderConfirmationData contains data for order confirmation email
type OrderConfirmationData struct {
	EmailTemplateData
	OrderName    string          `json:"order_name"`
	OrderDate    string          `json:"order_date"`
	OrderTotal   string          `json:"order_total"`
	DeliveryDate string          `json:"delivery_date"`
	Items        []OrderItemLine `json:"items"`
}

// OrderItemLine represents one line in an order email
type OrderItemLine struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Price    string `json:"price"`
	Total    string `json:"total"`
}

// OrderStatusUpdateData contains data for order status updates
type OrderStatusUpdateData struct {
	EmailTemplateData
	OrderName     string `json:"order_name"`
	Status        string `json:"status"`
	StatusMessage string `json:"status_message"`
}

// StockAlertData contains data for low stock alert emails
type StockAlertData struct {
	EmailTemplateData
	ProductName string `json:"product_name"`
	VariantName string `json:"variant_name"`
	Quantity    string `json:"quantity"`
	Level       string `json:"level"`
}

// GetBaseTemplateData returns common template data
func GetBaseTemplateData(siteName, siteURL, customerName string) EmailTemplateData {
	return EmailTemplateData{
		SiteName:     siteName,
		SiteURL:      siteURL,
		CustomerName: customerName,
		Year:         time.Now().Year(),
	}
}
