package govinfo

import (
	"context"

	"govinfo-billstatus/internal/components/xmltree"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// FetchStatus fetches a bill's status document and returns its <billStatus> node.
func (c Client) FetchStatus(ctx context.Context, id BillId) (*xmltree.Node, error) {
	ctx, span := tracer.Start(ctx, "client:FetchStatus")
	defer span.End()
	span.SetAttributes(attribute.String("bill", id.String()))

	path := id.StatusPath()
	tree, err := c.fetchTree(ctx, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch status document")
		return nil, err
	}

	status, ok := tree.Find("billStatus")
	if !ok {
		err := malformed(path, "missing <billStatus>")
		c.tel.ReportBroken(report_client_fetch_status, err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return status, nil
}

// FetchStatusById is FetchStatus for a composite id like "113sjres11".
func (c Client) FetchStatusById(ctx context.Context, id string) (*xmltree.Node, error) {
	parsed, err := ParseBillId(id)
	if err != nil {
		return nil, err
	}
	return c.FetchStatus(ctx, parsed)
}
