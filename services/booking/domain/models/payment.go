package models

import "fmt"

// PaymentMethod identifies how the customer intends to pay. The method is
// only recorded; no payment is executed.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentUPI    PaymentMethod = "upi"
	PaymentWallet PaymentMethod = "wallet"
)

// PaymentMethods lists the accepted methods in display order.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentUPI, PaymentWallet}

var paymentNames = map[PaymentMethod]string{
	PaymentCash:   "Cash on Service",
	PaymentCard:   "Credit/Debit Card",
	PaymentUPI:    "UPI",
	PaymentWallet: "Wallet",
}

// ParsePaymentMethod returns id as a PaymentMethod when it is accepted.
func ParsePaymentMethod(id string) (PaymentMethod, error) {
	m := PaymentMethod(id)
	if _, ok := paymentNames[m]; !ok {
		return "", fmt.Errorf("unknown payment method %q", id)
	}
	return m, nil
}

// Valid reports whether m is an accepted method.
func (m PaymentMethod) Valid() bool {
	_, ok := paymentNames[m]
	return ok
}

// DisplayName is the label shown to the customer.
func (m PaymentMethod) DisplayName() string {
	return paymentNames[m]
}
