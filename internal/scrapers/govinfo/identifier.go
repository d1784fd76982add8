package govinfo

import (
	"fmt"
	"strings"
)

// BillId is a parsed composite bill identifier like "113sjres11".
type BillId struct {
	Session string
	Type    BillType
	Number  string
}

// String reconstructs the composite identifier.
func (b BillId) String() string {
	return b.Session + string(b.Type) + b.Number
}

// StatusPath is the bulk-data path of the bill's status document.
func (b BillId) StatusPath() string {
	return fmt.Sprintf(
		"/fdsys/bulkdata/BILLSTATUS/%s/%s/BILLSTATUS-%s%s%s.xml",
		b.Session, b.Type,
		b.Session, b.Type, b.Number,
	)
}

// ParseBillId splits a composite identifier into session, type and number.
func ParseBillId(id string) (BillId, error) {
	return parseBillIdWith(BillTypes, id)
}

// parseBillIdWith picks the first type in `types` that occurs inside id with a
// non-empty prefix and suffix. It does not look for a better match afterwards,
// so correctness depends entirely on the order of `types`.
func parseBillIdWith(types []BillType, id string) (BillId, error) {
	for _, t := range types {
		session, number, found := strings.Cut(id, string(t))
		if !found || session == "" || number == "" {
			continue
		}
		if !isDigits(session) || !isDigits(number) {
			return BillId{}, &ParseError{
				Input:  id,
				Reason: fmt.Sprintf("type %q leaves non-numeric session %q or number %q", t, session, number),
			}
		}
		return BillId{Session: session, Type: t, Number: number}, nil
	}
	return BillId{}, &ParseError{Input: id, Reason: "no known bill type"}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
