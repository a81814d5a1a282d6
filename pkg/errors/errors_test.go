package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code         Code
		status       int
		retryable    bool
		detailsOK    bool
		clientFacing bool
	}{
		{code: CodeValidation, status: http.StatusUnprocessableEntity, detailsOK: true, clientFacing: true},
		{code: CodeNotFound, status: http.StatusNotFound, clientFacing: true},
		{code: CodeDuplicatePricing, status: http.StatusUnprocessableEntity, clientFacing: true},
		{code: CodeDuplicateValue, status: http.StatusUnprocessableEntity, detailsOK: true, clientFacing: true},
		{code: CodeInUse, status: http.StatusUnprocessableEntity, clientFacing: true},
		{code: CodeProductNotAvailable, status: http.StatusUnprocessableEntity, clientFacing: true},
		{code: CodeNoPricingAvailable, status: http.StatusUnprocessableEntity, clientFacing: true},
		{code: CodeInvalidStartDate, status: http.StatusUnprocessableEntity, detailsOK: true, clientFacing: true},
		{code: CodeInvalidRegion, status: http.StatusUnprocessableEntity, clientFacing: true},
		{code: CodeStateConflict, status: http.StatusUnprocessableEntity, detailsOK: true, clientFacing: true},
		{code: CodeIdempotency, status: http.StatusConflict, detailsOK: true, clientFacing: true},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, clientFacing: true},
		{code: CodeInternal, status: http.StatusInternalServerError, retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage == "" {
			t.Fatalf("code %s has no public message", tt.code)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
		if meta.ClientFacing != tt.clientFacing {
			t.Fatalf("code %s expected client facing %v got %v", tt.code, tt.clientFacing, meta.ClientFacing)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}
	if base.Error() != "VALIDATION_ERROR: missing foo" {
		t.Fatalf("unexpected error string %q", base.Error())
	}

	detail := map[string]any{"field": "foo"}
	base.WithDetails(detail)
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeDependency, cause, "load pricing")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
	if Wrap(CodeInternal, nil, "nothing").Unwrap() != nil {
		t.Fatalf("wrap of nil cause should not carry a cause")
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := fmt.Errorf("create booking: %w", New(CodeNoPricingAvailable, "no pricing"))
	if got := As(err); got == nil || got.Code() != CodeNoPricingAvailable {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatalf("As should ignore untyped errors")
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("delete region: %w", New(CodeInUse, "in use"))
	if !HasCode(err, CodeInUse) {
		t.Fatal("expected HasCode to find IN_USE")
	}
	if HasCode(err, CodeNotFound) {
		t.Fatal("did not expect NOT_FOUND")
	}
	if HasCode(nil, CodeInUse) {
		t.Fatal("nil error should never match")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	root := stdErrors.New("connection reset")
	err := Wrap(CodeDependency, root, "insert rental")

	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("unexpected dump code %s", dump.Code)
	}
	if !dump.Retryable {
		t.Fatal("dependency errors should dump as retryable")
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d: %v", len(dump.Chain), dump.Chain)
	}
	if Dump(nil).TopMessage != "" {
		t.Fatal("expected empty dump for nil")
	}
}

func TestDumpDecodesPostgresDiagnostics(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "rental_transactions_product_id_fkey", TableName: "rental_transactions"}
	err := Wrap(CodeDependency, fmt.Errorf("insert: %w", pgErr), "create rental")

	dump := Dump(err)
	if dump.PG == nil {
		t.Fatal("expected postgres diagnostics")
	}
	if dump.PG.Class() != "23" {
		t.Fatalf("unexpected class %q", dump.PG.Class())
	}
	fields := dump.Fields()
	if fields["pg_constraint"] != "rental_transactions_product_id_fkey" {
		t.Fatalf("unexpected constraint field %v", fields["pg_constraint"])
	}
	if fields["error_code"] != CodeDependency {
		t.Fatalf("unexpected code field %v", fields["error_code"])
	}
	if _, ok := Dump(stdErrors.New("plain")).Fields()["pg_code"]; ok {
		t.Fatal("plain errors should not carry pg fields")
	}
}
