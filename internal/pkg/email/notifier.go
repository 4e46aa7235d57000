// internal/pkg/email/notifier.go
package email

import (
	"fmt"

	"github.com/your-org/tradesupply-backend/internal/domain/order"
	"github.com/your-org/tradesupply-backend/internal/domain/party"
)

// OrderNotifier adapts the email service to the order notification interface
type OrderNotifier struct {
	service *EmailService
}

// NewOrderNotifier creates a new order notifier
func NewOrderNotifier(service *EmailService) *OrderNotifier {
	return &OrderNotifier{service: service}
}

// SendOrderConfirmationEmail sends an order confirmation to the customer
func (n *OrderNotifier) SendOrderConfirmationEmail(to string, o *order.CustomerOrder, customer *party.Customer) error {
	data := OrderConfirmationData{
		EmailTemplateData: GetBaseTemplateData(
			n.service.config.External.Email.FromName,
			n.service.config.External.Email.BaseURL,
			customer.Name,
		),
		OrderName:  o.Name,
		OrderDate:  o.CreatedAt.Format("January 2, 2006"),
		OrderTotal: "$" + o.TotalOrderValue.StringFixed(2),
	}
	if o.DeliveryDate != nil {
		data.DeliveryDate = o.DeliveryDate.Format("January 2, 2006")
	}
	for _, item := range o.Items {
		data.Items = append(data.Items, OrderItemLine{
			Name:     item.ProductName,
			Quantity: item.Quantity.String(),
			Price:    "$" + item.UnitPrice.StringFixed(2),
			Total:    "$" + item.TotalItemValue.StringFixed(2),
		})
	}

	htmlContent, err := n.service.renderTemplate("order_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render order confirmation template: %w", err)
	}

	return n.service.SendEmail(&Email{
		To:          []string{to},
		Subject:     fmt.Sprintf("Order Confirmation - %s", o.Name),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderConfirmation,
		Data: map[string]interface{}{
			"order_name":  o.Name,
			"order_total": o.TotalOrderValue.String(),
		},
	})
}

// SendOrderStatusUpdateEmail notifies the customer of an order status change
func (n *OrderNotifier) SendOrderStatusUpdateEmail(to string, o *order.CustomerOrder, customer *party.Customer) error {
	data := OrderStatusUpdateData{
		EmailTemplateData: GetBaseTemplateData(
			n.service.config.External.Email.FromName,
			n.service.config.External.Email.BaseURL,
			customer.Name,
		),
		OrderName:     o.Name,
		Status:        string(o.Status),
		StatusMessage: statusMessage(o.Status),
	}

	htmlContent, err := n.service.renderTemplate("order_status_update", data)
	if err != nil {
		return fmt.Errorf("failed to render order status update template: %w", err)
	}

	return n.service.SendEmail(&Email{
		To:          []string{to},
		Subject:     fmt.Sprintf("Order Update - %s", o.Name),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderStatusUpdate,
		Data: map[string]interface{}{
			"order_name": o.Name,
			"status":     string(o.Status),
		},
	})
}

func statusMessage(status order.OrderStatus) string {
	switch status {
	case order.OrderStatusConfirmed:
		return "Your order has been confirmed."
	case order.OrderStatusReady:
		return "Your order is ready for pickup or delivery."
	case order.OrderStatusDelivered:
		return "Your order has been delivered."
	case order.OrderStatusCancelled:
		return "Your order has been cancelled."
	default:
		return "Your order status has been updated."
	}
}
