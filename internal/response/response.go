package response

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/AdonaIsium/workerboard/internal/headers"
)

const (
	StatusLineOK       = "HTTP/1.1 200 OK"
	StatusLineNotFound = "HTTP/1.1 404 Not Found"
	StatusLineRedirect = "HTTP/1.1 302 Redirect"
)

// Response is written verbatim: the status line is not derived from a code,
// so non-standard reason phrases go out as given.
type Response struct {
	StatusLine string
	Headers    *headers.Headers
	Body       []byte
}

func New(statusLine string) *Response {
	return &Response{
		StatusLine: statusLine,
		Headers:    headers.NewHeaders(),
	}
}

// OK is a 200 answer that announces its length and closes the connection.
func OK(body string) *Response {
	res := New(StatusLineOK)
	res.Headers.Set("Content-Length", strconv.Itoa(len(body)))
	res.Headers.Set("Connection", "close")
	res.Body = []byte(body)
	return res
}

func HTML(body string) *Response {
	res := New(StatusLineOK)
	res.Headers.Set("Content-Length", strconv.Itoa(len(body)))
	res.Headers.Set("Content-Type", "text/html")
	res.Headers.Set("Connection", "close")
	res.Body = []byte(body)
	return res
}

func File(content []byte, contentType string) *Response {
	res := New(StatusLineOK)
	res.Headers.Set("Content-Length", strconv.Itoa(len(content)))
	res.Headers.Set("Connection", "close")
	res.Headers.Set("Content-Type", contentType)
	res.Body = content
	return res
}

func NotFound(body string) *Response {
	res := New(StatusLineNotFound)
	res.Headers.Set("Content-Length", strconv.Itoa(len(body)))
	res.Headers.Set("Connection", "close")
	res.Body = []byte(body)
	return res
}

func Redirect(location string) *Response {
	res := New(StatusLineRedirect)
	res.Headers.Set("Location", location)
	res.Headers.Set("Content-Length", "0")
	res.Headers.Set("Connection", "close")
	return res
}

// Echo answers with whatever status code the caller asked for. The reason
// phrase is always "OK".
func Echo(status, body string) *Response {
	res := New(fmt.Sprintf("HTTP/1.1 %s OK", status))
	res.Headers.Set("Content-Length", strconv.Itoa(len(body)))
	res.Headers.Set("Content-Type", "text/plain")
	res.Body = []byte(body)
	return res
}

// Write puts the status line, the headers in insertion order, a blank line and
// the body on w.
func Write(w io.Writer, res *Response) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\r\n", res.StatusLine); err != nil {
		return err
	}
	var werr error
	res.Headers.ForEach(func(n, v string) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(bw, "%s: %s\r\n", n, v)
	})
	if werr != nil {
		return werr
	}
	if _, err := bw.WriteString("\r\n"); err != nil {
		return err
	}
	if res.Body != nil {
		if _, err := bw.Write(res.Body); err != nil {
			return err
		}
	}
	return bw.Flush()
}
