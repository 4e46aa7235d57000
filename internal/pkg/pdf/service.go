// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/tradesupply-backend/internal/config"
	"github.com/your-org/tradesupply-backend/internal/domain/order"
	"github.com/your-org/tradesupply-backend/internal/domain/party"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateOrderDocument renders a customer order as a PDF document
func (s *Service) GenerateOrderDocument(o *order.CustomerOrder, customer *party.Customer) (*bytes.Buffer, error) {
	data := s.buildDocumentData(o, customer)

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// buildDocumentData formats all monetary and date values up front so the
// template stays free of arithmetic.
func (s *Service) buildDocumentData(o *order.CustomerOrder, customer *party.Customer) DocumentData {
	data := DocumentData{
		DocumentNumber: fmt.Sprintf("ORD-%s", o.Name),
		DocumentDate:   time.Now().Format("January 2, 2006"),
		OrderName:      o.Name,
		OrderDate:      o.CreatedAt.Format("January 2, 2006"),
		Status:         string(o.Status),
		PaymentStatus:  string(o.PaymentStatus),
		CustomerName:   customer.Name,
		CustomerEmail:  customer.Email,
		CustomerPhone:  customer.Phone,
		DeliveryMethod: o.DeliveryMethod,
		DeliveryAddr:   o.DeliveryAddress,
		Notes:          o.Notes,
		Subtotal:       "$" + o.SubtotalOrderValue.StringFixed(2),
		Discount:       "$" + o.DiscountAmount.StringFixed(2),
		TaxRate:        o.TaxRate.StringFixed(1) + "%",
		Total:          "$" + o.TotalOrderValue.StringFixed(2),
		Company: CompanyInfo{
			Name:    s.config.App.CompanyName,
			Address: s.config.App.CompanyAddress,
			Phone:   s.config.App.CompanyPhone,
			Email:   s.config.App.CompanyEmail,
			Website: s.config.App.CompanyWebsite,
		},
	}

	if o.DeliveryDate != nil {
		data.DeliveryDate = o.DeliveryDate.Format("January 2, 2006")
	}

	for _, item := range o.Items {
		line := DocumentLine{
			ProductName: item.ProductName,
			Quantity:    item.Quantity.String(),
			UnitPrice:   "$" + item.UnitPrice.StringFixed(2),
			Total:       "$" + item.TotalItemValue.StringFixed(2),
		}
		if item.Pallets > 0 || item.Layers > 0 {
			line.Packing = fmt.Sprintf("%d pallets, %d layers", item.Pallets, item.Layers)
		}
		data.Items = append(data.Items, line)
	}

	return data
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data DocumentData) (string, error) {
	tmpl := template.Must(template.New("order").Parse(orderTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// DocumentData represents the data passed to the order document template
type DocumentData struct {
	DocumentNumber string
	DocumentDate   string
	OrderName      string
	OrderDate      string
	Status         string
	PaymentStatus  string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	DeliveryMethod string
	DeliveryDate   string
	DeliveryAddr   string
	Notes          string
	Subtotal       string
	Discount       string
	TaxRate        string
	Total          string
	Items          []DocumentLine
	Company        CompanyInfo
}

// DocumentLine represents one formatted order line
type DocumentLine struct {
	ProductName string
	Quantity    string
	UnitPrice   string
	Total       string
	Packing     string
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// Order document HTML template
const orderTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Order {{.DocumentNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            border-bottom: 2px solid #333;
            padding-bottom: 20px;
            margin-bottom: 30px;
        }
        .company h1 {
            margin: 0 0 5px 0;
            font-size: 22px;
        }
        .company p {
            margin: 2px 0;
            font-size: 12px;
        }
        .document-info {
            text-align: right;
        }
        .document-info h2 {
            margin: 0 0 5px 0;
            font-size: 18px;
        }
        .section {
            margin-bottom: 25px;
        }
        .section h3 {
            font-size: 14px;
            border-bottom: 1px solid #ccc;
            padding-bottom: 4px;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            font-size: 12px;
        }
        th {
            background-color: #f0f0f0;
            text-align: left;
            padding: 8px;
            border-bottom: 1px solid #ccc;
        }
        td {
            padding: 8px;
            border-bottom: 1px solid #eee;
        }
        .totals {
            width: 280px;
            margin-left: auto;
            margin-top: 15px;
        }
        .totals td {
            padding: 4px 8px;
        }
        .totals .grand-total {
            font-weight: bold;
            border-top: 2px solid #333;
        }
        .notes {
            font-size: 12px;
            color: #555;
        }
    </style>
</head>
<body>
    <div class="header">
        <div class="company">
            <h1>{{.Company.Name}}</h1>
            <p>{{.Company.Address}}</p>
            <p>{{.Company.Phone}} | {{.Company.Email}}</p>
            <p>{{.Company.Website}}</p>
        </div>
        <div class="document-info">
            <h2>{{.DocumentNumber}}</h2>
            <p>Date: {{.DocumentDate}}</p>
            <p>Order placed: {{.OrderDate}}</p>
            <p>Status: {{.Status}} / {{.PaymentStatus}}</p>
        </div>
    </div>

    <div class="section">
        <h3>Customer</h3>
        <p>{{.CustomerName}}<br>
        {{if .CustomerEmail}}{{.CustomerEmail}}<br>{{end}}
        {{if .CustomerPhone}}{{.CustomerPhone}}{{end}}</p>
    </div>

    <div class="section">
        <h3>Delivery</h3>
        <p>
        {{if .DeliveryMethod}}Method: {{.DeliveryMethod}}<br>{{end}}
        {{if .DeliveryDate}}Date: {{.DeliveryDate}}<br>{{end}}
        {{if .DeliveryAddr}}Address: {{.DeliveryAddr}}{{end}}
        </p>
    </div>

    <div class="section">
        <h3>Items</h3>
        <table>
            <thead>
                <tr>
                    <th>Product</th>
                    <th>Quantity</th>
                    <th>Packing</th>
                    <th>Unit Price</th>
                    <th>Total</th>
                </tr>
            </thead>
            <tbody>
                {{range .Items}}
                <tr>
                    <td>{{.ProductName}}</td>
                    <td>{{.Quantity}}</td>
                    <td>{{.Packing}}</td>
                    <td>{{.UnitPrice}}</td>
                    <td>{{.Total}}</td>
                </tr>
                {{end}}
            </tbody>
        </table>
        <table class="totals">
            <tr><td>Subtotal</td><td>{{.Subtotal}}</td></tr>
            <tr><td>Discount</td><td>{{.Discount}}</td></tr>
            <tr><td>Tax ({{.TaxRate}})</td><td></td></tr>
            <tr class="grand-total"><td>Total</td><td>{{.Total}}</td></tr>
        </table>
    </div>

    {{if .Notes}}
    <div class="section notes">
        <h3>Notes</h3>
        <p>{{.Notes}}</p>
    </div>
    {{end}}
</body>
</html>`
