// ABOUTME: Error types for board persistence: I/O failures, malformed files, unencodable text.
// ABOUTME: Each satisfies errors.Is against its sentinel; wrapping types unwrap to their cause.
package store

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrPersistenceIO classifies failures to read or write a board file.
	ErrPersistenceIO = errors.New("persistence i/o failure")

	// ErrMalformedData classifies board files that parse but violate the schema,
	// or do not parse at all.
	ErrMalformedData = errors.New("malformed board data")

	// ErrUnencodable classifies boards holding text a format cannot carry.
	ErrUnencodable = errors.New("text not representable in format")
)

// IOError reports a failed read or write of Path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrPersistenceIO.
func (e *IOError) Is(target error) bool {
	return target == ErrPersistenceIO
}

// MalformedError reports the offending element of a bad board file, e.g.
// "cardlists[1].cards[0].name".
type MalformedError struct {
	Path    string
	Element string
	Err     error
}

func (e *MalformedError) Error() string {
	msg := "malformed board"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Element != "" {
		msg += " at " + e.Element
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrMalformedData.
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedData
}

// EncodeError reports a value that Format would alter on write, such as a
// control character in XML.
type EncodeError struct {
	Format  Format
	Element string
	Rune    rune
}

func (e *EncodeError) Error() string {
	if e.Rune == utf8.RuneError {
		return fmt.Sprintf("cannot encode %s as %s: invalid UTF-8", e.Element, e.Format)
	}
	return fmt.Sprintf("cannot encode %s as %s: character %U is not allowed", e.Element, e.Format, e.Rune)
}

// Is lets errors.Is match ErrUnencodable.
func (e *EncodeError) Is(target error) bool {
	return target == ErrUnencodable
}

func malformed(element string, format string, args ...any) *MalformedError {
	return &MalformedError{Element: element, Err: fmt.Errorf(format, args...)}
}
