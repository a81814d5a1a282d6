package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation          Code = "VALIDATION_ERROR"
	CodeNotFound            Code = "NOT_FOUND"
	CodeDuplicatePricing    Code = "DUPLICATE_PRICING"
	CodeDuplicateValue      Code = "DUPLICATE_VALUE"
	CodeInUse               Code = "IN_USE"
	CodeProductNotAvailable Code = "PRODUCT_NOT_AVAILABLE"
	CodeNoPricingAvailable  Code = "NO_PRICING_AVAILABLE"
	CodeInvalidStartDate    Code = "INVALID_START_DATE"
	CodeInvalidRegion       Code = "INVALID_REGION"
	CodeStateConflict       Code = "INVALID_STATUS_TRANSITION"
	CodeIdempotency         Code = "IDEMPOTENCY_KEY_REUSED"
	CodeRateLimit           Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal            Code = "INTERNAL_ERROR"
	CodeDependency          Code = "DEPENDENCY_ERROR"
)

// Metadata describes how a code is surfaced to API callers.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
	// ClientFacing codes expose the typed message instead of PublicMessage.
	ClientFacing bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
		ClientFacing:   true,
	},
	CodeNotFound: {
		HTTPStatus:    http.StatusNotFound,
		PublicMessage: "resource not found",
		ClientFacing:  true,
	},
	CodeDuplicatePricing: {
		HTTPStatus:    http.StatusUnprocessableEntity,
		PublicMessage: "Pricing for this product-region-period combination already exists",
		ClientFacing:  true,
	},
	CodeDuplicateValue: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		PublicMessage:  "value already exists",
		DetailsAllowed: true,
		ClientFacing:   true,
	},
	CodeInUse: {
		HTTPStatus:    http.StatusUnprocessableEntity,
		PublicMessage: "resource is in use",
		ClientFacing:  true,
	},
	CodeProductNotAvailable: {
		HTTPStatus:    http.StatusUnprocessableEntity,
		PublicMessage: "This product is not available for rental",
		ClientFacing:  true,
	},
	CodeNoPricingAvailable: {
		HTTPStatus:    http.StatusUnprocessableEntity,
		PublicMessage: "No pricing available for this product in the selected region and rental period",
		ClientFacing:  true,
	},
	CodeInvalidStartDate: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		PublicMessage:  "start date must be today or later",
		DetailsAllowed: true,
		ClientFacing:   true,
	},
	CodeInvalidRegion: {
		HTTPStatus:    http.StatusUnprocessableEntity,
		PublicMessage: "Invalid region ID",
		ClientFacing:  true,
	},
	CodeStateConflict: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		PublicMessage:  "state transition disallowed",
		DetailsAllowed: true,
		ClientFacing:   true,
	},
	CodeIdempotency: {
		HTTPStatus:     http.StatusConflict,
		PublicMessage:  "idempotency key reused",
		DetailsAllowed: true,
		ClientFacing:   true,
	},
	CodeRateLimit: {
		HTTPStatus:    http.StatusTooManyRequests,
		PublicMessage: "rate limit exceeded",
		ClientFacing:  true,
	},
	CodeInternal: {
		HTTPStatus:    http.StatusInternalServerError,
		Retryable:     true,
		PublicMessage: "internal server error",
	},
	CodeDependency: {
		HTTPStatus:     http.StatusServiceUnavailable,
		Retryable:      true,
		PublicMessage:  "dependency unavailable",
		DetailsAllowed: true,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// HasCode reports whether err carries the given typed code anywhere in its chain.
func HasCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}
