// Package form turns "key=value&key=value" strings into parameter lookups.
package form

import (
	"fmt"
	"iter"
	"net/url"
	"strings"
)

var ErrorMalformedQuery = fmt.Errorf("malformed query value")

type Params map[string]string

// ParseQuery parses the query component of a request target and
// percent-decodes every value on its own.
func ParseQuery(raw string) (Params, error) {
	params := Params{}
	for name, value := range pairs(raw) {
		decoded, err := url.QueryUnescape(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrorMalformedQuery, name, err)
		}
		params[name] = decoded
	}
	return params, nil
}

// ParseBody parses a form body. The request reader already percent-decoded
// the whole body, so values are taken as they are.
func ParseBody(body string) Params {
	params := Params{}
	for name, value := range pairs(body) {
		params[name] = value
	}
	return params
}

func (p Params) Get(name string) (string, bool) {
	v, ok := p[name]
	return v, ok
}

// pairs yields name/value pairs in order. Pairs without '=' are skipped.
func pairs(raw string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if raw == "" {
			return
		}
		for _, pair := range strings.Split(raw, "&") {
			name, value, ok := strings.Cut(pair, "=")
			if !ok {
				continue
			}
			if !yield(name, value) {
				return
			}
		}
	}
}
