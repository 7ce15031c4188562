package response

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteKeepsHeaderOrder(t *testing.T) {
	res := New("HTTP/1.1 200 OK")
	res.Headers.Set("Zeta", "1")
	res.Headers.Set("alpha", "2")
	res.Headers.Set("Middle", "3")
	res.Body = []byte("FooBar")

	w := new(bytes.Buffer)
	require.NoError(t, Write(w, res))
	assert.Equal(t, "HTTP/1.1 200 OK\r\nZeta: 1\r\nalpha: 2\r\nMiddle: 3\r\n\r\nFooBar", w.String())
}

func TestWriteWithoutBody(t *testing.T) {
	w := new(bytes.Buffer)
	require.NoError(t, Write(w, New("HTTP/1.1 204 OK")))
	assert.Equal(t, "HTTP/1.1 204 OK\r\n\r\n", w.String())
}

func TestConstructors(t *testing.T) {
	w := new(bytes.Buffer)
	require.NoError(t, Write(w, OK("Okay")))
	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 4\r\nConnection: close\r\n\r\nOkay", w.String())

	w.Reset()
	require.NoError(t, Write(w, NotFound("does not exist")))
	assert.Equal(t, "HTTP/1.1 404 Not Found\r\nContent-Length: 14\r\nConnection: close\r\n\r\ndoes not exist", w.String())

	w.Reset()
	require.NoError(t, Write(w, Redirect("http://localhost:8080/index.html")))
	assert.Equal(t, "HTTP/1.1 302 Redirect\r\nLocation: http://localhost:8080/index.html\r\nContent-Length: 0\r\nConnection: close\r\n\r\n", w.String())

	w.Reset()
	require.NoError(t, Write(w, Echo("404", "nope")))
	assert.Equal(t, "HTTP/1.1 404 OK\r\nContent-Length: 4\r\nContent-Type: text/plain\r\n\r\nnope", w.String())

	res := File([]byte("body{}"), "text/css")
	ct, _ := res.Headers.Get("Content-Type")
	assert.Equal(t, "text/css", ct)
	cl, _ := res.Headers.Get("Content-Length")
	assert.Equal(t, "6", cl)

	res = HTML("<ul></ul>")
	ct, _ = res.Headers.Get("Content-Type")
	assert.Equal(t, "text/html", ct)
}

func TestEchoContentLengthCountsBytes(t *testing.T) {
	res := Echo("200", "blåbær")
	cl, _ := res.Headers.Get("Content-Length")
	assert.Equal(t, "8", cl)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestWriteReportsErrors(t *testing.T) {
	err := Write(failingWriter{}, OK("Okay"))
	assert.Error(t, err)
}
