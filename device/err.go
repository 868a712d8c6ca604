package device

import (
	"errors"

	"github.com/ezrec/nandpc/translate"
)

var f = translate.From

var (
	// Port errors
	ErrShortWrite = errors.New(f("short write"))
)
