package domain

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

// ReceiptNumberPattern matches the wire format of generated receipt numbers.
var ReceiptNumberPattern = regexp.MustCompile(`^RCP-\d{8}-\d{5}$`)

// NewReceiptNumber generates a date-scoped receipt number of the form
// RCP-YYYYMMDD-NNNNN. The 5-digit random suffix is unique only with
// overwhelming probability within a day; collisions are an accepted tradeoff
// at this volume.
func NewReceiptNumber(t time.Time) string {
	return fmt.Sprintf("RCP-%s-%05d", t.Format("20060102"), rand.Intn(100000))
}
