package govinfo

import (
	"context"

	"govinfo-billstatus/internal/components/fanout"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ListBills returns the bill ids referenced by the sitemap of one bill type in
// one session, in document order.
func (c Client) ListBills(ctx context.Context, session string, billType BillType) ([]string, error) {
	ctx, span := tracer.Start(ctx, "client:ListBills")
	defer span.End()
	span.SetAttributes(
		attribute.String("session", session),
		attribute.String("type", string(billType)),
	)

	path := SitemapPath(session, billType)
	tree, err := c.fetchTree(ctx, path)
	if err != nil {
		c.tel.ReportBroken(report_client_list_bills, err, session, billType)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch sitemap")
		return nil, err
	}

	ids := c.extractSitemap(path, tree, SitemapLeaf)
	span.SetAttributes(attribute.Int("count", len(ids)))
	return ids, nil
}

// ListAllBills lists every bill type of a session concurrently. The result is
// the concatenation of each type's list in BillTypes order.
//
// Under fanout.FailFast the first failing type (in BillTypes order) fails the
// whole call, under fanout.BestEffort failing types are left out.
func (c Client) ListAllBills(ctx context.Context, session string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "client:ListAllBills")
	defer span.End()
	span.SetAttributes(
		attribute.String("session", session),
		attribute.String("policy", c.policy.String()),
	)

	lists, failures, err := fanout.Run(
		ctx, BillTypes, c.fanoutOptions(),
		func(ctx context.Context, t BillType) ([]string, error) {
			return c.ListBills(ctx, session, t)
		},
	)
	for _, f := range failures {
		c.tel.ReportWarning(report_client_list_all_bills, f.Err, session, BillTypes[f.Index])
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list a bill type")
		return nil, err
	}

	var ids []string
	for _, l := range lists {
		ids = append(ids, l...)
	}

	c.tel.ReportCount(report_client_list_all_bills, int64(len(ids)))
	span.SetAttributes(attribute.Int("count", len(ids)))
	return ids, nil
}
