// internal/domain/order/conversion_test.go
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/tradesupply-backend/internal/domain/audit"
	"github.com/your-org/tradesupply-backend/internal/domain/party"
	"github.com/your-org/tradesupply-backend/internal/domain/storefront"
)

// fakeStore is an in-memory ConversionStore with per-method failure hooks
type fakeStore struct {
	orders    map[string]*storefront.Order
	items     map[string][]storefront.OrderItem
	customers map[string]*party.Customer

	createdCustomers []*party.Customer
	createdOrders    []*CustomerOrder
	createdItems     []*CustomerOrderItem
	auditEntries     []*audit.Entry
	annotations      map[string]string

	failItemInsert func(item *CustomerOrderItem) error
	failOrder      error
	failAudit      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:      make(map[string]*storefront.Order),
		items:       make(map[string][]storefront.OrderItem),
		customers:   make(map[string]*party.Customer),
		annotations: make(map[string]string),
	}
}

func (f *fakeStore) GetStorefrontOrder(_ context.Context, id string) (*storefront.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return o, nil
}

func (f *fakeStore) ListStorefrontItems(_ context.Context, orderID string) ([]storefront.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeStore) GetCustomer(_ context.Context, id string) (*party.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (f *fakeStore) FindCustomerByEmail(_ context.Context, email string) (*party.Customer, error) {
	for _, c := range f.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) CreateCustomer(_ context.Context, customer *party.Customer) error {
	f.customers[customer.ID] = customer
	f.createdCustomers = append(f.createdCustomers, customer)
	return nil
}

func (f *fakeStore) CreateOrder(_ context.Context, order *CustomerOrder) error {
	if f.failOrder != nil {
		return f.failOrder
	}
	f.createdOrders = append(f.createdOrders, order)
	return nil
}

func (f *fakeStore) CreateOrderItem(_ context.Context, item *CustomerOrderItem) error {
	if f.failItemInsert != nil {
		if err := f.failItemInsert(item); err != nil {
			return err
		}
	}
	f.createdItems = append(f.createdItems, item)
	return nil
}

func (f *fakeStore) AnnotateStorefrontOrder(_ context.Context, id, targetOrderID, _ string) error {
	if _, done := f.annotations[id]; done {
		return ErrConflict
	}
	f.annotations[id] = targetOrderID
	return nil
}

func (f *fakeStore) AppendAudit(_ context.Context, entry *audit.Entry) error {
	if f.failAudit != nil {
		return f.failAudit
	}
	f.auditEntries = append(f.auditEntries, entry)
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func sourceOrder(id string) *storefront.Order {
	return &storefront.Order{
		ID:                 id,
		Name:               "WEB-1042",
		Status:             storefront.OrderStatusConfirmed,
		PaymentStatus:      storefront.PaymentStatusPaid,
		CustomerName:       "Dana Reyes",
		Email:              "dana@example.com",
		Phone:              "555-0134",
		Address:            "14 Granite Way",
		City:               "Hamilton",
		Province:           "ON",
		PostalCode:         "L8P 1A1",
		TaxRate:            decimal.NewFromInt(13),
		SubtotalOrderValue: decimal.NewFromInt(400),
		DiscountAmount:     decimal.NewFromInt(40),
		TotalOrderValue:    decimal.NewFromFloat(406.80),
	}
}

func sourceItem(orderID, name string, price, qty int64) storefront.OrderItem {
	return storefront.OrderItem{
		ID:          fmt.Sprintf("item-%s", strings.ToLower(name)),
		OrderID:     orderID,
		ProductID:   "prod-1",
		VariantID:   "var-1",
		ProductName: name,
		UnitPrice:   decimal.NewFromInt(price),
		Quantity:    decimal.NewFromInt(qty),
	}
}

func TestConvertReusesCustomerByEmail(t *testing.T) {
	store := newFakeStore()
	store.orders["so-1"] = sourceOrder("so-1")
	store.items["so-1"] = []storefront.OrderItem{sourceItem("so-1", "Slate", 100, 4)}
	existing := &party.Customer{ID: "cust-1", Name: "Dana Reyes", Email: "dana@example.com"}
	store.customers["cust-1"] = existing

	conv := NewConverter(store, testLogger())
	result, err := conv.Convert(context.Background(), "so-1", ConvertOptions{})
	require.NoError(t, err)

	assert.Equal(t, "cust-1", result.CustomerID)
	assert.False(t, result.CustomerCreated)
	assert.Empty(t, store.createdCustomers)
	require.Len(t, store.createdOrders, 1)
	assert.Equal(t, "cust-1", store.createdOrders[0].CustomerID)
}

func TestConvertCreatesCustomerWhenNoMatch(t *testing.T) {
	store := newFakeStore()
	store.orders["so-1"] = sourceOrder("so-1")
	store.items["so-1"] = []storefront.OrderItem{sourceItem("so-1", "Slate", 100, 4)}

	conv := NewConverter(store, testLogger())
	result, err := conv.Convert(context.Background(), "so-1", ConvertOptions{})
	require.NoError(t, err)

	assert.True(t, result.CustomerCreated)
	require.Len(t, store.createdCustomers, 1)
	created := store.createdCustomers[0]
	assert.Equal(t, "Dana Reyes", created.Name)
	assert.Equal(t, "dana@example.com", created.Email)
	assert.Equal(t, party.CustomerTypeRetail, created.CustomerType)
	assert.Equal(t, created.ID, result.CustomerID)
}

func TestConvertExplicitCustomerTakesPrecedence(t *testing.T) {
	store := newFakeStore()
	store.orders["so-1"] = sourceOrder("so-1")
	// This customer also matches by email, so precedence is observable.
	store.customers["cust-email"] = &party.Customer{ID: "cust-email", Email: "dana@example.com"}
	store.customers["cust-chosen"] = &party.Customer{ID: "cust-chosen", Email: "other@example.com"}

	conv := NewConverter(store, testLogger())
	result, err := conv.Convert(context.Background(), "so-1", ConvertOptions{SelectedCustomerID: "cust-chosen"})
	require.NoError(t, err)
	assert.Equal(t, "cust-chosen", result.CustomerID)
}

func TestConvertExplicitCustomerNotFound(t *testing.T) {
	store := newFakeStore()
	store.orders["so-1"] = sourceOrder("so-1")

	conv := NewConverter(store, testLogger())
	_, err := conv.Convert(context.Background(), "so-1", ConvertOptions{SelectedCustomerID: "missing"})
	require.Error(t, err)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, StageCustomer, convErr.Stage)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.createdOrders)
}

func TestConvertSourceNotFound(t *testing.T) {
	conv := NewConverter(newFakeStore(), testLogger())
	_, err := conv.Convert(context.Background(), "missing", ConvertOptions{})

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, StageSource, convErr.Stage)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConvertPartialItemFailure(t *testing.T) {
	store := newFakeStore()
	store.orders["so-1"] = sourceOrder("so-1")
	store.items["so-1"] = []storefront.OrderItem{
		sourceItem("so-1", "Slate", 100, 2),
		sourceItem("so-1", "Granite", 200, 1),
		sourceItem("so-1", "Marble", 150, 3),
	}
	store.failItemInsert = func(item *CustomerOrderItem) error {
		if item.ProductName == "Granite" {
			return errors.New("insert rejected")
		}
		return nil
	}

	conv := NewConverter(store, testLogger())
	result, err := conv.Convert(context.Background(), "so-1", ConvertOptions{})
	require.NoError(t, err)

	assert.NotEmpty(t, result.CustomerOrderID)
	require.Len(t, result.ItemErrors, 1)
	assert.Equal(t, "Granite", result.ItemErrors[0].ProductName)
	assert.Len(t, store.createdItems, 2)
}

func TestConvertSkipsArchivedItems(t *testing.T) {
	store := newFakeStore()
	store.orders["so-1"] = sourceOrder("so-1")
	archived := sourceItem("so-1", "Granite", 200, 1)
	archived.IsArchived = true
	store.items["so-1"] = []storefront.OrderItem{
		sourceItem("so-1", "Slate", 100, 2),
		archived,
	}

	conv := NewConverter(store, testLogger())
	result, err := conv.Convert(context.Background(), "so-1", ConvertOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.ItemErrors)
	require.Len(t, store.createdItems, 1)
	assert.Equal(t, "Slate", store.createdItems[0].ProductName)
}

func TestConvertItemMapping(t *testing.T) {
	store := newFakeStore()
	store.orders["so-1"] = sourceOrder("so-1")
	store.items["so-1"] = []storefront.OrderItem{sourceItem("so-1", "Slate", 120, 5)}

	conv := NewConverter(store, testLogger())
	result, err := conv.Convert(context.Background(), "so-1", ConvertOptions{})
	require.NoError(t, err)

	require.Len(t, store.createdItems, 1)
	item := store.createdItems[0]
	assert.Equal(t, result.CustomerOrderID, item.OrderID)
	assert.True(t, item.TotalItemValue.Equal(decimal.NewFromInt(600)))
	assert.True(t, item.DiscountAmount.IsZero())
	assert.True(t, item.DiscountPercentage.IsZero())
	assert.Zero(t, item.Pallets)
	assert.Zero(t, item.Layers)
	assert.NotEqual(t, "item-slate", item.ID)
}

func TestConvertHeaderMapping(t *testing.T) {
	store := newFakeStore()
	source := sourceOrder("so-1")
	source.Name = ""
	source.TaxRate = decimal.Zero
	source.DeliveryAddress = ""
	source.Notes = "source-side notes"
	store.orders["so-1"] = source
	store.customers["cust-1"] = &party.Customer{ID: "cust-1", Email: "dana@example.com", Address: "14 Granite Way"}

	conv := NewConverter(store, testLogger())
	_, err := conv.Convert(context.Background(), "so-1", ConvertOptions{Notes: "rush delivery"})
	require.NoError(t, err)

	require.Len(t, store.createdOrders, 1)
	order := store.createdOrders[0]
	assert.Regexp(t, `^CO-\d{8}-\d{4}$`, order.Name)
	assert.True(t, order.TaxRate.Equal(DefaultTaxRate))
	assert.Equal(t, "14 Granite Way", order.DeliveryAddress)
	assert.Equal(t, "rush delivery", order.Notes)
	assert.False(t, order.SendEmail)
	// discount 40 of subtotal 400
	assert.True(t, order.DiscountPercentage.Equal(decimal.NewFromInt(10)))
}

func TestConvertConflictOnSecondConversion(t *testing.T) {
	store := newFakeStore()
	store.orders["so-1"] = sourceOrder("so-1")
	store.customers["cust-1"] = &party.Customer{ID: "cust-1", Email: "dana@example.com"}

	conv := NewConverter(store, testLogger())
	_, err := conv.Convert(context.Background(), "so-1", ConvertOptions{})
	require.NoError(t, err)

	_, err = conv.Convert(context.Background(), "so-1", ConvertOptions{})
	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, StageAnnotate, convErr.Stage)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestConvertAuditFailureIsSwallowed(t *testing.T) {
	store := newFakeStore()
	store.orders["so-1"] = sourceOrder("so-1")
	store.customers["cust-1"] = &party.Customer{ID: "cust-1", Email: "dana@example.com"}
	store.failAudit = errors.New("audit store down")

	conv := NewConverter(store, testLogger())
	result, err := conv.Convert(context.Background(), "so-1", ConvertOptions{ActorID: "emp-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.CustomerOrderID)
	assert.Empty(t, store.auditEntries)
}

func TestConvertHeaderFailureAborts(t *testing.T) {
	store := newFakeStore()
	store.orders["so-1"] = sourceOrder("so-1")
	store.failOrder = errors.New("write rejected")

	conv := NewConverter(store, testLogger())
	_, err := conv.Convert(context.Background(), "so-1", ConvertOptions{})

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, StageOrder, convErr.Stage)
	assert.Empty(t, store.createdItems)
	// The lazily created customer is not rolled back.
	assert.Len(t, store.createdCustomers, 1)
}
