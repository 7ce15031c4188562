package request

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// readLine collects bytes up to the next CR and drops the byte after it,
// which a well-behaved peer sends as LF.
func readLine(r io.ByteReader) (string, error) {
	var line strings.Builder
	for {
		c, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && line.Len() > 0 {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		if c == '\r' {
			if _, err := r.ReadByte(); err != nil && !errors.Is(err, io.EOF) {
				return "", err
			}
			return line.String(), nil
		}
		line.WriteByte(c)
	}
}

// readBody reads exactly length bytes and percent-decodes them as one string,
// before any form splitting happens.
func readBody(r io.ByteReader, length int) (string, error) {
	raw := make([]byte, length)
	for i := range raw {
		c, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		raw[i] = c
	}

	body, err := url.QueryUnescape(string(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrorMalformedBody, err)
	}
	return body, nil
}
