package govinfo

import (
	"context"
	"regexp"

	"govinfo-billstatus/internal/components/fanout"
	"govinfo-billstatus/internal/components/xmltree"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ActionRecord is the latest recorded action on a bill.
type ActionRecord struct {
	// Id is the composite identifier the record was requested with.
	Id   string
	Bill BillId
	// Date is kept exactly as the status document provides it.
	Date string
	Text string
}

// ExtractLatestAction reads bill > latestAction > {actionDate, text} out of a
// <billStatus> node. A missing node in that chain is ErrMalformedDocument,
// not an absent action.
func ExtractLatestAction(id BillId, status *xmltree.Node) (ActionRecord, error) {
	path := id.StatusPath()

	bill, ok := status.Find("bill")
	if !ok {
		return ActionRecord{}, malformed(path, "missing <bill>")
	}
	latest, ok := bill.Child("latestAction")
	if !ok {
		return ActionRecord{}, malformed(path, "missing <latestAction>")
	}
	date, ok := latest.Find("actionDate")
	if !ok {
		return ActionRecord{}, malformed(path, "missing <actionDate>")
	}
	text, ok := latest.Find("text")
	if !ok {
		return ActionRecord{}, malformed(path, "missing <text>")
	}

	return ActionRecord{
		Id:   id.String(),
		Bill: id,
		Date: date.Value(),
		Text: text.Value(),
	}, nil
}

// LatestAction fetches the status document of a composite id and extracts its latest action.
func (c Client) LatestAction(ctx context.Context, id string) (ActionRecord, error) {
	ctx, span := tracer.Start(ctx, "client:LatestAction")
	defer span.End()
	span.SetAttributes(attribute.String("bill", id))

	parsed, err := ParseBillId(id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return ActionRecord{}, err
	}
	status, err := c.FetchStatus(ctx, parsed)
	if err != nil {
		return ActionRecord{}, err
	}

	record, err := ExtractLatestAction(parsed, status)
	if err != nil {
		c.tel.ReportBroken(report_client_latest_action, err)
		span.SetStatus(codes.Error, err.Error())
		return ActionRecord{}, err
	}
	record.Id = id
	return record, nil
}

// LatestActions runs LatestAction for every id concurrently, results follow
// the order of ids.
func (c Client) LatestActions(ctx context.Context, ids []string) ([]ActionRecord, error) {
	records, failures, err := fanout.Run(ctx, ids, c.fanoutOptions(), c.LatestAction)
	for _, f := range failures {
		c.tel.ReportWarning(report_client_latest_action, f.Err, ids[f.Index])
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FilterByAction lists the bills of one type in one session and keeps those
// whose latest action text matches pattern anywhere (not a full match).
// Output order follows the sitemap order.
func (c Client) FilterByAction(ctx context.Context, session string, billType BillType, pattern *regexp.Regexp) ([]ActionRecord, error) {
	if pattern == nil {
		return nil, ErrNilPattern
	}

	ctx, span := tracer.Start(ctx, "client:FilterByAction")
	defer span.End()
	span.SetAttributes(
		attribute.String("session", session),
		attribute.String("type", string(billType)),
		attribute.String("pattern", pattern.String()),
	)

	ids, err := c.ListBills(ctx, session, billType)
	if err != nil {
		return nil, err
	}

	records, err := c.LatestActions(ctx, ids)
	if err != nil {
		c.tel.ReportBroken(report_client_filter_action, err, session, billType)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch latest actions")
		return nil, err
	}

	var matched []ActionRecord
	for _, r := range records {
		if pattern.MatchString(r.Text) {
			matched = append(matched, r)
		}
	}

	c.tel.ReportCount(report_client_filter_action, int64(len(matched)))
	span.SetAttributes(attribute.Int("matched", len(matched)))
	return matched, nil
}
