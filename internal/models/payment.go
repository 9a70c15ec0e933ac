package models

import "time"

// Payment records a completed membership purchase
type Payment struct {
	ID            string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Email         string    `json:"email" bson:"email"`
	Price         float64   `json:"price" bson:"price"`
	TransactionID string    `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
}

// CreatePaymentRequest is the body of POST /payments
type CreatePaymentRequest struct {
	Email         string  `json:"email" validate:"required"`
	Price         float64 `json:"price"`
	TransactionID string  `json:"transactionId,omitempty"`
}

// PaymentResult combines the payment insert and the membership update
type PaymentResult struct {
	PaymentResult    *InsertAck `json:"paymentResult"`
	MembershipResult *UpdateAck `json:"membershipResult"`
}

// PaymentIntentRequest is the body of POST /create-payment-intent. Price is in major units.
type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"gt=0"`
}
