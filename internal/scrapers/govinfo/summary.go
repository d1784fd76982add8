package govinfo

import (
	"context"

	"govinfo-billstatus/internal/components/xmltree"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Summary is the headline information of a status document.
type Summary struct {
	Id             string
	Bill           BillId
	Title          string
	IntroducedDate string
	OriginChamber  string
	LatestAction   ActionRecord
}

func childValue(node *xmltree.Node, name string) string {
	child, ok := node.Child(name)
	if !ok {
		return ""
	}
	return child.Value()
}

// ExtractSummary reads the direct children of <bill>. Title, introduction date
// and chamber are optional, the latest action is required.
func ExtractSummary(id BillId, status *xmltree.Node) (Summary, error) {
	latest, err := ExtractLatestAction(id, status)
	if err != nil {
		return Summary{}, err
	}
	// present, ExtractLatestAction already checked
	bill, _ := status.Find("bill")

	return Summary{
		Id:             id.String(),
		Bill:           id,
		Title:          childValue(bill, "title"),
		IntroducedDate: childValue(bill, "introducedDate"),
		OriginChamber:  childValue(bill, "originChamber"),
		LatestAction:   latest,
	}, nil
}

func (c Client) Summary(ctx context.Context, id string) (Summary, error) {
	ctx, span := tracer.Start(ctx, "client:Summary")
	defer span.End()
	span.SetAttributes(attribute.String("bill", id))

	parsed, err := ParseBillId(id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Summary{}, err
	}
	status, err := c.FetchStatus(ctx, parsed)
	if err != nil {
		return Summary{}, err
	}

	summary, err := ExtractSummary(parsed, status)
	if err != nil {
		c.tel.ReportBroken(report_client_summary, err)
		span.SetStatus(codes.Error, err.Error())
		return Summary{}, err
	}
	summary.Id = id
	summary.LatestAction.Id = id
	return summary, nil
}
