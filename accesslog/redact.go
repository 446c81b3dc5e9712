package accesslog

import "strings"

const redactedValue = "REDACTED"

// redactor masks the values of query parameters named on a static deny-list.
type redactor struct {
	deny map[string]struct{}
}

func newRedactor(params []string) *redactor {
	deny := make(map[string]struct{}, len(params))
	for _, p := range params {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			deny[p] = struct{}{}
		}
	}
	if len(deny) == 0 {
		return nil
	}
	return &redactor{deny: deny}
}

// apply rewrites a raw query string, replacing the value of every denied
// parameter. Matching is case-insensitive; parameter order and segments
// without a value are kept as-is.
func (r *redactor) apply(rawQuery string) string {
	if r == nil || rawQuery == "" {
		return rawQuery
	}
	segs := strings.Split(rawQuery, "&")
	changed := false
	for i, seg := range segs {
		name, _, ok := strings.Cut(seg, "=")
		if !ok {
			continue
		}
		if _, denied := r.deny[strings.ToLower(name)]; denied {
			segs[i] = name + "=" + redactedValue
			changed = true
		}
	}
	if !changed {
		return rawQuery
	}
	return strings.Join(segs, "&")
}
