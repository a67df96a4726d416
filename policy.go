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

import "strings"

// Filter selects which fonts a Finder returns.
// The zero value keeps all fonts.
type Filter struct {
	OmitStatic   bool // omit fonts without an "fvar" table
	OmitVariable bool // omit fonts with an "fvar" table

	OmitTrueType   bool // omit fonts with TrueType outlines, in any container
	OmitPostScript bool // omit fonts with CFF outlines, in any container

	OmitSFNT  bool // omit unwrapped fonts
	OmitWOFF  bool
	OmitWOFF2 bool
}

// Validate checks that the filter can let at least some fonts through.
func (f Filter) Validate() error {
	var reason error
	switch {
	case f.OmitTrueType && f.OmitPostScript:
		reason = ErrConflictingOutlineFilters
	case f.OmitWOFF && f.OmitWOFF2 && f.OmitSFNT:
		reason = ErrConflictingContainerFilters
	case f.OmitStatic && f.OmitVariable:
		reason = ErrConflictingVariabilityFilters
	default:
		return nil
	}
	return &FinderError{Err: reason}
}

// Keep returns true if a font of the given class passes the filter.
func (f Filter) Keep(c Class) bool {
	switch c.Kind {
	case KindNone:
		return false
	case KindTrueType, KindPostScript:
		if f.OmitSFNT {
			return false
		}
	case KindWOFF:
		if f.OmitWOFF {
			return false
		}
	case KindWOFF2:
		if f.OmitWOFF2 {
			return false
		}
	}

	if c.Variable && f.OmitVariable || !c.Variable && f.OmitStatic {
		return false
	}
	if c.Outline == OutlineTrueType && f.OmitTrueType ||
		c.Outline == OutlinePostScript && f.OmitPostScript {
		return false
	}
	return true
}

func (f Filter) String() string {
	var omit []string
	for _, flag := range []struct {
		set  bool
		name string
	}{
		{f.OmitStatic, "static"},
		{f.OmitVariable, "variable"},
		{f.OmitTrueType, "TrueType"},
		{f.OmitPostScript, "PostScript"},
		{f.OmitSFNT, "SFNT"},
		{f.OmitWOFF, "WOFF"},
		{f.OmitWOFF2, "WOFF2"},
	} {
		if flag.set {
			omit = append(omit, flag.name)
		}
	}
	if len(omit) == 0 {
		return "all fonts"
	}
	return "omit " + strings.Join(omit, ", ")
}
