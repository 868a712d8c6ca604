package main

import (
	"errors"

	"github.com/ezrec/nandpc/translate"
)

var f = translate.From

var (
	ErrStateMultiple = errors.New(f("--state needs a single program"))
)
