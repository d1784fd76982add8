package govinfo

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBillId(t *testing.T) {
	table := []struct {
		input    string
		expected BillId
	}{
		{input: "113sjres11", expected: BillId{Session: "113", Type: SJRes, Number: "11"}},
		{input: "114hjres75", expected: BillId{Session: "114", Type: HJRes, Number: "75"}},
		{input: "115hconres3", expected: BillId{Session: "115", Type: HConRes, Number: "3"}},
		{input: "115sconres12", expected: BillId{Session: "115", Type: SConRes, Number: "12"}},
		{input: "116hres1024", expected: BillId{Session: "116", Type: HRes, Number: "1024"}},
		{input: "116sres8", expected: BillId{Session: "116", Type: SRes, Number: "8"}},
		{input: "117hr1", expected: BillId{Session: "117", Type: HR, Number: "1"}},
		{input: "117s2938", expected: BillId{Session: "117", Type: S, Number: "2938"}},
		{input: "99hr5", expected: BillId{Session: "99", Type: HR, Number: "5"}},
	}

	for _, row := range table {
		result, err := ParseBillId(row.input)
		require.NoError(t, err, row.input)
		require.Equal(t, row.expected, result, row.input)
		require.Equal(t, row.input, result.String(), "reconstructs %s", row.input)
	}
}

func TestParseBillIdErrors(t *testing.T) {
	inputs := []string{
		"",
		"113",
		"hr5",
		"113hr",
		"113xyz1",
		"113hrx",
		"abcsdef",
	}
	for _, input := range inputs {
		_, err := ParseBillId(input)
		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr), "expected ParseError for %q, got %v", input, err)
		require.Equal(t, input, parseErr.Input)
	}
}

func TestBillTypesOrder(t *testing.T) {
	// an earlier token contained in a later one would always win over it
	for i, earlier := range BillTypes {
		for _, later := range BillTypes[i+1:] {
			require.False(
				t,
				strings.Contains(string(later), string(earlier)),
				"%q must come after %q", earlier, later,
			)
		}
	}
}

func TestParseBillIdOrderRegression(t *testing.T) {
	shortestFirst := []BillType{S, HR, SRes, HRes, SConRes, HConRes, SJRes, HJRes}
	hrBeforeHres := []BillType{HJRes, SJRes, HConRes, SConRes, HR, HRes, SRes, S}

	ambiguous := []string{
		"113hres4",
		"113sres4",
		"113hconres2",
		"113sconres7",
		"113sjres11",
		"113hjres1",
	}

	for _, id := range ambiguous {
		correct, err := parseBillIdWith(BillTypes, id)
		require.NoError(t, err, id)
		require.Equal(t, id, correct.String())

		wrong, err := parseBillIdWith(shortestFirst, id)
		if err == nil {
			require.NotEqual(t, correct, wrong, "shortest-first order should misparse %s", id)
		}
	}

	wrong, err := parseBillIdWith(shortestFirst, "113hr4")
	require.NoError(t, err)
	require.Equal(t, HR, wrong.Type, "unambiguous ids survive any order")

	_, err = parseBillIdWith(hrBeforeHres, "113hres4")
	require.Error(t, err, "hr before hres splits 113hres4 into 113|hr|es4")
}

func TestBillIdPaths(t *testing.T) {
	id := BillId{Session: "113", Type: SJRes, Number: "11"}
	require.Equal(t, "/fdsys/bulkdata/BILLSTATUS/113/sjres/BILLSTATUS-113sjres11.xml", id.StatusPath())
	require.Equal(t, "/smap/bulkdata/BILLSTATUS/114hjres/sitemap.xml", SitemapPath("114", HJRes))
}

func TestParseBillType(t *testing.T) {
	billType, err := ParseBillType(" HR ")
	require.NoError(t, err)
	require.Equal(t, HR, billType)

	_, err = ParseBillType("hjre")
	var unknown *UnknownBillTypeError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, HJRes, unknown.Suggestion)
	require.Contains(t, err.Error(), `did you mean "hjres"`)

	_, err = ParseBillType("")
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, BillType(""), unknown.Suggestion)
}
