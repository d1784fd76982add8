package govinfo

import (
	"context"
	"fmt"

	"govinfo-billstatus/internal/components/xmltree"

	"github.com/go-resty/resty/v2"
)

const (
	sessionIndexPath = "/smap/bulkdata/BILLSTATUS/sitemapindex.xml"
)

// SitemapPath is the bulk-data path of the sitemap listing every bill of one
// type in one session.
func SitemapPath(session string, billType BillType) string {
	return fmt.Sprintf("/smap/bulkdata/BILLSTATUS/%s%s/sitemap.xml", session, billType)
}

// Fetcher retrieves the body at a path relative to the bulk-data origin.
//
// note: fault injection point
type Fetcher interface {
	Get(ctx context.Context, path string) ([]byte, error)
}

type restyFetcher struct {
	http *resty.Client
}

func (f restyFetcher) Get(ctx context.Context, path string) ([]byte, error) {
	res, err := f.http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("unexpected status %s", res.Status())
	}
	return res.Body(), nil
}

// fetch wraps every transport failure into a *FetchError.
func (c Client) fetch(ctx context.Context, path string) ([]byte, error) {
	c.tel.ReportDebug("fetch", path)

	body, err := c.fetcher.Get(ctx, path)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch, err, path)
		return nil, &FetchError{Path: path, Err: err}
	}
	return body, nil
}

func (c Client) fetchTree(ctx context.Context, path string) (*xmltree.Node, error) {
	body, err := c.fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	tree, err := xmltree.Parse(body)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch, err, path)
		return nil, malformed(path, "%v", err)
	}
	return tree, nil
}
