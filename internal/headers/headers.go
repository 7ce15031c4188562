package headers

import (
	"fmt"
	"strings"
)

var ErrorMalformedFieldLine = fmt.Errorf("malformed field-line")

// Headers keeps field names exactly as they were given and remembers the
// order in which each name was first set. Setting a name again replaces the
// value in place.
type Headers struct {
	names  []string
	values map[string]string
}

func NewHeaders() *Headers {
	return &Headers{
		values: map[string]string{},
	}
}

// Get looks a field up by its exact name.
func (h *Headers) Get(name string) (string, bool) {
	v, ok := h.values[name]
	return v, ok
}

func (h *Headers) Set(name, value string) {
	if _, exists := h.values[name]; !exists {
		h.names = append(h.names, name)
	}
	h.values[name] = value
}

func (h *Headers) Len() int {
	return len(h.names)
}

func (h *Headers) ForEach(cb func(n, v string)) {
	for _, n := range h.names {
		cb(n, h.values[n])
	}
}

// ParseFieldLine splits "Name: value" on the first colon. The value loses its
// leading whitespace only.
func ParseFieldLine(line string) (string, string, error) {
	idx := strings.IndexByte(line, ':')
	if idx == -1 {
		return "", "", fmt.Errorf("%w: %q", ErrorMalformedFieldLine, line)
	}
	return line[:idx], strings.TrimLeft(line[idx+1:], " \t"), nil
}
