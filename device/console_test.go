package device

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	con := &Console{Output: output}

	for _, c := range []byte("Hi!") {
		assert.NoError(con.Send(c))
	}

	assert.Equal("Hi!", output.String())
	assert.Equal(3, con.Sent())

	con.Rewind()
	assert.Equal(0, con.Sent())

	con.Resume(5)
	assert.NoError(con.Send('!'))
	assert.Equal(6, con.Sent())
}

func TestConsoleLatin1(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	con := &Console{Output: output}

	assert.NoError(con.Send(0xe9))
	assert.Equal("é", output.String())
	assert.Equal([]byte{0xc3, 0xa9}, output.Bytes())
}

func TestConsoleDiscard(t *testing.T) {
	assert := assert.New(t)

	con := &Console{}
	assert.NoError(con.Send('x'))
	assert.Equal(1, con.Sent())
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) - 1, nil
}

type failWriter struct{}

var errFail = errors.New("fail")

func (failWriter) Write(p []byte) (int, error) {
	return 0, errFail
}

func TestConsoleErrors(t *testing.T) {
	assert := assert.New(t)

	con := &Console{Output: shortWriter{}}
	assert.ErrorIs(con.Send('a'), ErrShortWrite)

	con = &Console{Output: failWriter{}}
	assert.ErrorIs(con.Send('a'), errFail)
}

func TestNull(t *testing.T) {
	assert := assert.New(t)

	var port Port = Null{}
	port.Rewind()
	assert.NoError(port.Send(0xff))
}
