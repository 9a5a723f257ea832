package domain

import (
	"strings"
	"testing"
	"time"
)

func TestNewReceiptNumber(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		rcp := NewReceiptNumber(at)

		if !ReceiptNumberPattern.MatchString(rcp) {
			t.Fatalf("receipt %q does not match pattern", rcp)
		}

		if !strings.HasPrefix(rcp, "RCP-20250314-") {
			t.Fatalf("receipt %q does not carry the call date", rcp)
		}
	}
}
