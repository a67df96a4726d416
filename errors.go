// seehuhn.de/go/fontfind - locate and classify font files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fontfind

import "errors"

// These errors are reported by the Finder, wrapped in a [*FinderError].
// Use [errors.Is] to test for a specific condition.
var (
	ErrInvalidInputPath  = errors.New("input path is not a file or directory")
	ErrInvalidReturnType = errors.New("no font constructor given")

	ErrConflictingOutlineFilters     = errors.New("both TrueType and PostScript outlines are filtered out")
	ErrConflictingContainerFilters   = errors.New("WOFF, WOFF2 and SFNT fonts are all filtered out")
	ErrConflictingVariabilityFilters = errors.New("both static and variable fonts are filtered out")

	ErrNoFontsFound = errors.New("no fonts found")
)

// FinderError is the common type of all errors returned by a Finder.
type FinderError struct {
	// Path is the input path of the search, if known.
	Path string

	// Err is one of the Err* values from this package.
	Err error

	// Cause optionally gives more detail.
	Cause error
}

func (err *FinderError) Error() string {
	msg := "fontfind: "
	if err.Path != "" {
		msg += err.Path + ": "
	}
	msg += err.Err.Error()
	if err.Cause != nil {
		msg += " (" + err.Cause.Error() + ")"
	}
	return msg
}

func (err *FinderError) Unwrap() []error {
	if err.Cause == nil {
		return []error{err.Err}
	}
	return []error{err.Err, err.Cause}
}
