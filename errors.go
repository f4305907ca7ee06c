/*
 * errors.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

import "fmt"

// Kind classifies an Error the way spec.md 7's error-kind table does.
// It is not an exception hierarchy: every Kind satisfies the same
// Error interface, and callers branch on Kind rather than on type.
type Kind int

const (
	// KindConfiguration is raised from registration: an unknown form
	// tag, a malformed target arity, a non-positive cutoff.
	KindConfiguration Kind = iota
	// KindResource is raised when an allocation cannot grow within its
	// hard upper bound (neighbor list growth, BOF cache sizing).
	KindResource
	// KindState is raised when evaluation is attempted without atoms,
	// a cell, or assigned indices.
	KindState
	// KindNumerical is raised when a kernel returns a non-finite value,
	// or a smoothening interval is degenerate (soft > hard).
	KindNumerical
	// KindInternal marks a cache invariant violation: a bug, not a
	// recoverable condition. newError panics immediately when asked to
	// build one, in keeping with gochem's convention of panicking on
	// programmer error rather than returning an error a caller might
	// paper over; the *cerr it builds exists only so the panic value is
	// still a pysic Error a recover() site can inspect.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindResource:
		return "resource"
	case KindState:
		return "state"
	case KindNumerical:
		return "numerical"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the interface every package in this module implements. The
// Decorate method mirrors gochem's chem.Error: it lets a caller add a
// frame of context (typically its own function name) without changing
// the error's type or wrapping it in something a type switch further up
// would no longer recognize.
type Error interface {
	error
	Decorate(string) []string
	Critical() bool
	Kind() Kind
}

// cerr is the concrete Error implementation shared by every operation
// in this package, named the way gochem names its own (Error, lower
// case when unexported equivalents exist in sibling packages).
type cerr struct {
	kind    Kind
	message string
	deco    []string
}

// newError builds a *cerr of the given kind. For KindInternal it
// panics at this call site instead of returning -- the call site is,
// by construction, the point where a cache or loop invariant was just
// found violated (spec.md 7's "internal" kind is assertion-style, not
// a recoverable condition the caller could be trusted to check).
func newError(kind Kind, format string, args ...interface{}) *cerr {
	e := &cerr{kind: kind, message: fmt.Sprintf(format, args...)}
	if kind == KindInternal {
		panic(e)
	}
	return e
}

func (e *cerr) Error() string {
	return fmt.Sprintf("pysic: %s: %s", e.kind, e.message)
}

// Decorate adds dec to the decoration slice (skipping empty strings,
// per the teacher's convention of treating an empty decoration as a
// pure read) and returns the resulting slice.
func (e *cerr) Decorate(dec string) []string {
	if dec != "" {
		e.deco = append(e.deco, dec)
	}
	return e.deco
}

// Critical reports whether e is a KindInternal error. Since newError
// already panics on construction, this only ever fires for a caller
// that recovered the panic and wants to confirm what it caught before
// deciding whether to re-panic.
func (e *cerr) Critical() bool { return e.kind == KindInternal }
func (e *cerr) Kind() Kind     { return e.kind }

// errDecorate asserts that err implements Error and decorates it with
// caller's name before returning it, the same helper pattern used
// throughout gochem's trajectory readers.
func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
		return e
	}
	return err
}
