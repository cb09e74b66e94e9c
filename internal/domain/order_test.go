package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestContactInfoValidate(t *testing.T) {
	contact := ContactInfo{
		FullName: "John Doe",
		Email:    "john@example.com",
		Phone:    "1234567890",
		Address:  "123 Main St",
		City:     "Springfield",
		State:    "IL",
		Pincode:  "62704",
	}

	require.Nil(t, contact.Validate())
}

func TestContactInfoValidateReportsAllMissingFields(t *testing.T) {
	contact := ContactInfo{
		FullName: "John Doe",
		Phone:    "   ",
		City:     "Springfield",
	}

	verr := contact.Validate()
	require.NotNil(t, verr)
	require.Equal(t, []string{"email", "phone", "address", "state", "pincode"}, verr.Fields)
}

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{
		Price: decimal.RequireFromString("19.99"),
		Qty:   3,
	}

	require.True(t, item.Subtotal().Equal(decimal.RequireFromString("59.97")))
}

func TestOrderTotalAmount(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{Price: decimal.RequireFromString("10.50"), Qty: 2},
			{Price: decimal.RequireFromString("0.99"), Qty: 5},
		},
	}

	require.True(t, order.TotalAmount().Equal(decimal.RequireFromString("25.95")))
}

func TestOrderTotalAmountEmpty(t *testing.T) {
	order := &Order{}
	require.True(t, order.TotalAmount().Equal(decimal.Zero))
}
