package num

import (
	"errors"
	"fmt"

	"github.com/fixedwidth/go-num/internal/limb"
)

var (
	// ErrDivisionByZero is returned by the Checked division methods, and is
	// the value Quo, Rem and QuoRem panic with, when the divisor is zero.
	ErrDivisionByZero = errors.New("num: division by zero")

	// ErrInvalidShift reports a negative shift count.
	ErrInvalidShift = errors.New("num: invalid shift amount")

	// ErrConversion is matched by every *ConversionError.
	ErrConversion = errors.New("num: conversion failed")

	ErrSyntax = limb.ErrSyntax
	ErrRange  = limb.ErrRange
)

// ConversionError reports text that could not be converted to a number. Err
// is ErrSyntax for malformed input and ErrRange for values that do not fit.
type ConversionError struct {
	Type  string
	Input string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("num: %s string %q invalid: %v", e.Type, e.Input, e.Err)
}

func (e *ConversionError) Unwrap() []error {
	return []error{ErrConversion, e.Err}
}

// ShiftError carries the offending shift count.
type ShiftError struct {
	Shift int
}

func (e *ShiftError) Error() string {
	return fmt.Sprintf("num: invalid shift amount %d", e.Shift)
}

func (e *ShiftError) Unwrap() error { return ErrInvalidShift }
