package govinfo

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// CompareSessions orders two session tokens by numeric value, so "100" sorts
// after "99". Leading zeros are ignored. Both tokens are expected to be digits.
func CompareSessions(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// MaxSession returns the greatest session by CompareSessions.
func MaxSession(sessions []string) (string, bool) {
	if len(sessions) == 0 {
		return "", false
	}
	newest := sessions[0]
	for _, s := range sessions[1:] {
		if CompareSessions(s, newest) > 0 {
			newest = s
		}
	}
	return newest, true
}

// CurrentSession resolves the newest session referenced by the sitemap index.
func (c Client) CurrentSession(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "client:CurrentSession")
	defer span.End()

	tree, err := c.fetchTree(ctx, sessionIndexPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch sitemap index")
		return "", err
	}

	sessions := c.extractSitemap(sessionIndexPath, tree, SitemapIndex)
	current, ok := MaxSession(sessions)
	if !ok {
		c.tel.ReportBroken(report_client_current_session, ErrNoSessionFound, sessionIndexPath)
		span.SetStatus(codes.Error, ErrNoSessionFound.Error())
		return "", ErrNoSessionFound
	}

	span.SetAttributes(attribute.String("session", current))
	return current, nil
}
