package request

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AdonaIsium/workerboard/internal/headers"
)

type parserState string

const (
	StateInit    parserState = "init"
	StateDone    parserState = "done"
	StateBody    parserState = "body"
	StateHeaders parserState = "headers"
	StateError   parserState = "error"
)

type RequestLine struct {
	HttpVersion   string
	RequestTarget string
	Method        string
}

type Request struct {
	RequestLine RequestLine
	Headers     *headers.Headers
	state       parserState
	Body        string
	hasBody     bool
}

var ErrorMalformedRequestLine = fmt.Errorf("malformed request-line")
var ErrorMalformedContentLength = fmt.Errorf("malformed content-length")
var ErrorMalformedBody = fmt.Errorf("malformed body encoding")
var ErrorRequestInErrorState = fmt.Errorf("request in error state")

const contentLengthHeader = "Content-Length"

func newRequest() *Request {
	return &Request{
		state:   StateInit,
		Headers: headers.NewHeaders(),
		Body:    "",
	}
}

// RequestFromReader parses exactly one request off reader. It blocks until the
// start line, every header line and Content-Length body bytes have arrived.
func RequestFromReader(reader io.Reader) (*Request, error) {
	request := newRequest()

	var br io.ByteReader
	if b, ok := reader.(io.ByteReader); ok {
		br = b
	} else {
		br = bufio.NewReader(reader)
	}

	for !request.done() {
		if err := request.step(br); err != nil {
			request.state = StateError
			return nil, err
		}
	}
	return request, nil
}

// HasBody reports whether the request announced a Content-Length.
func (r *Request) HasBody() bool {
	return r.hasBody
}

// Path is the request target without its query component.
func (r *Request) Path() string {
	target := r.RequestLine.RequestTarget
	if idx := strings.IndexByte(target, '?'); idx != -1 {
		return target[:idx]
	}
	return target
}

// Query returns whatever follows the first '?' of the target.
func (r *Request) Query() (string, bool) {
	target := r.RequestLine.RequestTarget
	idx := strings.IndexByte(target, '?')
	if idx == -1 {
		return "", false
	}
	return target[idx+1:], true
}

func parseRequestLine(line string) (*RequestLine, error) {
	parts := strings.Split(line, " ")
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrorMalformedRequestLine, line)
	}

	rl := &RequestLine{Method: parts[0], RequestTarget: parts[1]}
	if len(parts) > 2 {
		rl.HttpVersion = strings.TrimPrefix(parts[2], "HTTP/")
	}
	return rl, nil
}

func contentLength(h *headers.Headers) (int, bool, error) {
	valueStr, exists := h.Get(contentLengthHeader)
	if !exists {
		return 0, false, nil
	}

	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil || value < 0 {
		return 0, true, fmt.Errorf("%w: %q", ErrorMalformedContentLength, valueStr)
	}
	return value, true, nil
}

func (r *Request) step(br io.ByteReader) error {
	switch r.state {
	case StateError:
		return ErrorRequestInErrorState
	case StateInit:
		line, err := readLine(br)
		if err != nil {
			return err
		}
		rl, err := parseRequestLine(line)
		if err != nil {
			return err
		}
		r.RequestLine = *rl
		r.state = StateHeaders
	case StateHeaders:
		line, err := readLine(br)
		if err != nil {
			return err
		}
		if line == "" {
			_, ok, err := contentLength(r.Headers)
			if err != nil {
				return err
			}
			if ok {
				r.state = StateBody
			} else {
				r.state = StateDone
			}
			return nil
		}
		name, value, err := headers.ParseFieldLine(line)
		if err != nil {
			return err
		}
		r.Headers.Set(name, value)
	case StateBody:
		length, _, err := contentLength(r.Headers)
		if err != nil {
			return err
		}
		body, err := readBody(br, length)
		if err != nil {
			return err
		}
		r.Body = body
		r.hasBody = true
		r.state = StateDone
	case StateDone:
	default:
		panic("somehow we have programmed poorly")
	}
	return nil
}

func (r *Request) done() bool {
	return r.state == StateDone || r.state == StateError
}
