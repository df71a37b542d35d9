package shopify

import "strings"

// nextPageURL extracts the rel="next" target from a Link response header.
// The upstream emits entries like:
//
//	<https://x.myshopify.com/admin/api/2023-10/orders.json?page_info=abc&limit=50>; rel="next"
//
// The returned URL carries the opaque cursor and must be requested as-is;
// re-sending the original filter parameters alongside it is invalid.
func nextPageURL(header string) string {
	if header == "" {
		return ""
	}
	for _, entry := range strings.Split(header, ",") {
		if !strings.Contains(entry, `rel="next"`) {
			continue
		}
		target := strings.SplitN(entry, ";", 2)[0]
		return strings.Trim(strings.TrimSpace(target), "<>")
	}
	return ""
}
