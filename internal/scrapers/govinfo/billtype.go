package govinfo

import (
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
)

// BillType is a bill/resolution category token as it appears in bulk-data paths.
type BillType string

const (
	HJRes   BillType = "hjres"
	SJRes   BillType = "sjres"
	HConRes BillType = "hconres"
	SConRes BillType = "sconres"
	HRes    BillType = "hres"
	SRes    BillType = "sres"
	HR      BillType = "hr"
	S       BillType = "s"
)

// BillTypes is the one ordered list of bill types used for identifier parsing,
// sitemap extraction and fan-out.
//
// The order is load bearing: a token must come before every shorter token that
// is a substring of it (hres before hr, sres before s), otherwise identifiers
// are split at the wrong boundary.
var BillTypes = []BillType{HJRes, SJRes, HConRes, SConRes, HRes, SRes, HR, S}

func (t BillType) String() string {
	return string(t)
}

// UnknownBillTypeError is returned by ParseBillType, Suggestion is the closest
// known type by Jaro-Winkler similarity.
type UnknownBillTypeError struct {
	Input      string
	Suggestion BillType
}

func (e *UnknownBillTypeError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("unknown bill type %q", e.Input)
	}
	return fmt.Sprintf("unknown bill type %q (did you mean %q?)", e.Input, e.Suggestion)
}

// ParseBillType accepts a bill type token regardless of case and surrounding whitespace.
func ParseBillType(s string) (BillType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, t := range BillTypes {
		if string(t) == normalized {
			return t, nil
		}
	}
	return "", &UnknownBillTypeError{
		Input:      s,
		Suggestion: closestBillType(normalized),
	}
}

func closestBillType(s string) BillType {
	if s == "" {
		return ""
	}
	var best BillType
	var bestScore float64
	for _, t := range BillTypes {
		score := matchr.JaroWinkler(s, string(t), false)
		if score > bestScore {
			bestScore = score
			best = t
		}
	}
	return best
}
