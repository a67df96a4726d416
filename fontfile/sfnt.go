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
	"io"

	"seehuhn.de/go/sfnt/header"
)

// parseSFNT reads the table directory of an unwrapped sfnt file.
// Unknown versions, empty or overlapping directories and tables beyond
// the end of the file are rejected by header.Read.
func parseSFNT(r io.ReaderAt) (*Font, error) {
	info, err := header.Read(strictReaderAt{r})
	if err != nil {
		return nil, err
	}

	f := &Font{
		flavor:  FlavorSFNT,
		version: info.ScalerType,
		toc:     make(map[string]record, len(info.Toc)),
	}
	for tag, rec := range info.Toc {
		f.toc[tag] = record{
			Offset:     rec.Offset,
			Length:     rec.Length,
			OrigLength: rec.Length,
		}
	}
	return f, nil
}

// strictReaderAt reports a short read as io.EOF.  afero's in-memory files
// return short reads without an error, which io.ReaderAt does not allow.
type strictReaderAt struct {
	io.ReaderAt
}

func (r strictReaderAt) ReadAt(p []byte, off int64) (int, error) {
	n, err := r.ReaderAt.ReadAt(p, off)
	if n < len(p) && err == nil {
		err = io.EOF
	}
	return n, err
}
