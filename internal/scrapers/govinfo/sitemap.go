package govinfo

import (
	"strings"

	"govinfo-billstatus/internal/components/xmltree"
)

// SitemapKind tells ExtractSitemap what each <loc> of a sitemap references.
type SitemapKind int

const (
	// SitemapIndex is the top-level index, each <loc> points at a per-type-per-session sitemap.
	SitemapIndex SitemapKind = iota
	// SitemapLeaf is a per-type-per-session sitemap, each <loc> points at a status document.
	SitemapLeaf
)

const (
	indexMarker = "BILLSTATUS/"
	leafMarker  = "BILLSTATUS-"
	leafSuffix  = ".xml"
)

// ExtractSitemap derives one reference per <loc> node in document order: a
// session token for SitemapIndex, a bare bill id for SitemapLeaf.
// Locations that do not contain the expected marker are returned in skipped.
func ExtractSitemap(tree *xmltree.Node, kind SitemapKind) (refs []string, skipped []string) {
	for _, loc := range tree.FindAll("loc") {
		raw := loc.Value()

		var ref string
		var ok bool
		switch kind {
		case SitemapIndex:
			ref, ok = sessionFromLoc(raw)
		case SitemapLeaf:
			ref, ok = billIdFromLoc(raw)
		}
		if !ok {
			skipped = append(skipped, raw)
			continue
		}
		refs = append(refs, ref)
	}
	return refs, skipped
}

// sessionFromLoc turns ".../BILLSTATUS/115hr/sitemap.xml" into "115": the text
// between the marker and the earliest occurrence of any bill type token.
func sessionFromLoc(loc string) (string, bool) {
	i := strings.LastIndex(loc, indexMarker)
	if i < 0 {
		return "", false
	}
	rest := loc[i+len(indexMarker):]

	first := -1
	for _, t := range BillTypes {
		j := strings.Index(rest, string(t))
		if j >= 0 && (first < 0 || j < first) {
			first = j
		}
	}
	if first < 0 {
		return "", false
	}

	session := rest[:first]
	if !isDigits(session) {
		return "", false
	}
	return session, true
}

// billIdFromLoc turns ".../BILLSTATUS-114hjres75.xml" into "114hjres75".
func billIdFromLoc(loc string) (string, bool) {
	i := strings.LastIndex(loc, leafMarker)
	if i < 0 {
		return "", false
	}
	id := strings.TrimSuffix(loc[i+len(leafMarker):], leafSuffix)
	if id == "" {
		return "", false
	}
	return id, true
}

func (c Client) extractSitemap(path string, tree *xmltree.Node, kind SitemapKind) []string {
	refs, skipped := ExtractSitemap(tree, kind)
	for _, loc := range skipped {
		c.tel.ReportWarning(report_sitemap_extract, "unrecognized location", path, loc)
	}
	return refs
}
