package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrInvalidQuantity
	ErrReservedExceedsStock
	ErrInsufficientStock
	ErrInvalidStateTransition
	ErrInvalidActorLocation
	ErrInvalidLineItem
	ErrInvalidAmount
	ErrPaymentFailure
	ErrPaymentInconclusive
	ErrOrderPersistence
	ErrCheckoutInFlight
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:                "success",
	ErrInternal:               "error internal",
	ErrNotFound:               "data not found",
	ErrInvalidRequest:         "invalid request",
	ErrUnauthorize:            "unauthorize request",
	ErrInvalidQuantity:        "quantity must not be negative",
	ErrReservedExceedsStock:   "quantity below reserved stock",
	ErrInsufficientStock:      "insufficient stock",
	ErrInvalidStateTransition: "request state does not allow this transition",
	ErrInvalidActorLocation:   "actor has no location for this order",
	ErrInvalidLineItem:        "cart line does not resolve to a valid product",
	ErrInvalidAmount:          "amount below chargeable minimum",
	ErrPaymentFailure:         "payment was not successful",
	ErrPaymentInconclusive:    "payment ended without a terminal status",
	ErrOrderPersistence:       "payment accepted but order was not recorded",
	ErrCheckoutInFlight:       "a payment is already in progress for this checkout",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:                http.StatusOK,
	ErrInternal:               http.StatusInternalServerError,
	ErrNotFound:               http.StatusBadRequest,
	ErrInvalidRequest:         http.StatusBadRequest,
	ErrUnauthorize:            http.StatusUnauthorized,
	ErrInvalidQuantity:        http.StatusBadRequest,
	ErrReservedExceedsStock:   http.StatusConflict,
	ErrInsufficientStock:      http.StatusConflict,
	ErrInvalidStateTransition: http.StatusConflict,
	ErrInvalidActorLocation:   http.StatusBadRequest,
	ErrInvalidLineItem:        http.StatusBadRequest,
	ErrInvalidAmount:          http.StatusBadRequest,
	ErrPaymentFailure:         http.StatusPaymentRequired,
	ErrPaymentInconclusive:    http.StatusAccepted,
	ErrOrderPersistence:       http.StatusOK,
	ErrCheckoutInFlight:       http.StatusConflict,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:                "0000",
	ErrInternal:               "0001",
	ErrNotFound:               "0002",
	ErrInvalidRequest:         "0003",
	ErrUnauthorize:            "0004",
	ErrInvalidQuantity:        "0005",
	ErrReservedExceedsStock:   "0006",
	ErrInsufficientStock:      "0007",
	ErrInvalidStateTransition: "0008",
	ErrInvalidActorLocation:   "0009",
	ErrInvalidLineItem:        "0010",
	ErrInvalidAmount:          "0011",
	ErrPaymentFailure:         "0012",
	ErrPaymentInconclusive:    "0013",
	ErrOrderPersistence:       "0014",
	ErrCheckoutInFlight:       "0015",
}
