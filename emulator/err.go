package emulator

import (
	"errors"

	"github.com/ezrec/nandpc/translate"
)

var f = translate.From

var (
	ErrStateFormat = errors.New(f("state format invalid"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Offset int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("offset %d %v", err.Offset, err.Err)
	}
	return f("line %d offset %d %v", err.LineNo, err.Offset, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
