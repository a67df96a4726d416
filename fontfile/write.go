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

package fontfile

import (
	"bytes"
	"errors"
	"io"

	"seehuhn.de/go/sfnt/header"
)

// WriteSFNT writes an sfnt file containing the given tables.
// Tables where the data is nil are not written, use a zero-length slice
// to write a table with no data.
//
// If a "head" table is present, its checksum adjustment is set in a copy
// of the table data.  The tables map itself is not modified.
func WriteSFNT(w io.Writer, version uint32, tables map[string][]byte) (int64, error) {
	out := make(map[string][]byte, len(tables))
	for name, data := range tables {
		if data != nil && len(name) == 4 {
			out[name] = data
		}
	}
	if len(out) == 0 {
		return 0, errors.New("fontfile: no tables to write")
	}
	if len(out) > 0xFFFF {
		return 0, errors.New("fontfile: too many tables")
	}
	if head, ok := out["head"]; ok {
		if len(head) < 12 {
			return 0, &InvalidFontError{SubSystem: "fontfile", Reason: "head table too short"}
		}
		out["head"] = bytes.Clone(head)
	}

	return header.Write(w, version, out)
}
