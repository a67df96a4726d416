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

// Package describe extracts human-readable information from font files.
package describe

import (
	"bytes"
	"errors"

	"golang.org/x/image/font/sfnt"
	"seehuhn.de/go/fontfind/fontfile"
)

// Info summarises a font.
type Info struct {
	Family         string
	Subfamily      string
	PostScriptName string
	NumGlyphs      int
	UnitsPerEm     int
}

// Font describes an opened font.
// WOFF and WOFF2 fonts are unpacked in memory before parsing.
func Font(f *fontfile.Font) (*Info, error) {
	buf := &bytes.Buffer{}
	if _, err := f.WriteSFNT(buf); err != nil {
		return nil, err
	}
	return Data(buf.Bytes())
}

// Data describes a font given as unwrapped sfnt data.
func Data(data []byte) (*Info, error) {
	font, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}

	info := &Info{
		NumGlyphs:  font.NumGlyphs(),
		UnitsPerEm: int(font.UnitsPerEm()),
	}

	var buf sfnt.Buffer
	for _, field := range []struct {
		id  sfnt.NameID
		dst *string
	}{
		{sfnt.NameIDFamily, &info.Family},
		{sfnt.NameIDSubfamily, &info.Subfamily},
		{sfnt.NameIDPostScript, &info.PostScriptName},
	} {
		s, err := font.Name(&buf, field.id)
		if errors.Is(err, sfnt.ErrNotFound) {
			continue
		} else if err != nil {
			return nil, err
		}
		*field.dst = s
	}

	return info, nil
}
