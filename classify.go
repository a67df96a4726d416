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

import "seehuhn.de/go/fontfind/fontfile"

// Font is the set of methods a Finder needs to classify a font.
// [*fontfile.Font] implements this interface.
type Font interface {
	// Flavor returns the container the font is wrapped in.
	Flavor() fontfile.Flavor

	// Version returns the sfnt version, i.e. 0x00010000 or "true" for
	// TrueType outlines and "OTTO" for CFF outlines.
	Version() uint32

	// Has returns true if all the given tables are present.
	Has(tags ...string) bool

	Close() error
}

// Kind describes the binary format of a font file.
type Kind int

// These are the font kinds recognised by Classify.
const (
	KindNone Kind = iota
	KindTrueType
	KindPostScript
	KindWOFF
	KindWOFF2
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTrueType:
		return "TrueType"
	case KindPostScript:
		return "PostScript"
	case KindWOFF:
		return "WOFF"
	case KindWOFF2:
		return "WOFF2"
	default:
		return "unknown"
	}
}

// IsSFNT returns true for unwrapped sfnt fonts.
func (k Kind) IsSFNT() bool {
	return k == KindTrueType || k == KindPostScript
}

// Outline describes how glyph outlines are stored.
type Outline int

// These are the supported outline formats.
const (
	OutlineTrueType   Outline = iota // quadratic, "glyf" table
	OutlinePostScript                // cubic, "CFF " or "CFF2" table
)

func (o Outline) String() string {
	if o == OutlinePostScript {
		return "PostScript"
	}
	return "TrueType"
}

// Class is the result of classifying a font.
type Class struct {
	Kind     Kind
	Outline  Outline
	Variable bool
}

// Classify determines the kind, outline format and variability of a font.
//
// The outline format is derived from the sfnt version, in the same way
// for wrapped and unwrapped fonts.  A font is variable if it has an
// "fvar" table.
func Classify(f Font) Class {
	version := f.Version()

	outline := OutlineTrueType
	if version == fontfile.VersionCFF {
		outline = OutlinePostScript
	}

	var kind Kind
	switch f.Flavor() {
	case fontfile.FlavorSFNT:
		if outline == OutlinePostScript {
			kind = KindPostScript
		} else {
			kind = KindTrueType
		}
	case fontfile.FlavorWOFF:
		kind = KindWOFF
	case fontfile.FlavorWOFF2:
		kind = KindWOFF2
	default:
		kind = KindNone
	}

	return Class{
		Kind:     kind,
		Outline:  outline,
		Variable: f.Has("fvar"),
	}
}
