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
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/klauspost/compress/zlib"
)

// https://www.w3.org/TR/WOFF/

const (
	woffHeaderSize   = 44
	woffEntrySize    = 20
	woffMaxNumTables = 280
)

// maxTableSize limits the memory used for a single decompressed table.
const maxTableSize = 1 << 28

// parseWOFF reads the header and table directory of a WOFF file.
func parseWOFF(r io.ReaderAt) (*Font, error) {
	buf, err := readAt(r, 0, woffHeaderSize)
	if err == io.ErrUnexpectedEOF {
		return nil, woffError("header truncated")
	} else if err != nil {
		return nil, err
	}

	version := binary.BigEndian.Uint32(buf[4:8])
	totalLength := binary.BigEndian.Uint32(buf[8:12])
	numTables := int(binary.BigEndian.Uint16(buf[12:14]))
	reserved := binary.BigEndian.Uint16(buf[14:16])

	if !isSupportedVersion(version) {
		return nil, &NotSupportedError{
			SubSystem: "fontfile/woff",
			Feature:   fmt.Sprintf("sfnt version 0x%08x", version),
		}
	}
	if reserved != 0 {
		return nil, woffError("non-zero reserved field")
	}
	if numTables == 0 {
		return nil, woffError("no tables found")
	}
	if numTables > woffMaxNumTables {
		return nil, woffError("too many tables")
	}

	dirEnd := uint32(woffHeaderSize + numTables*woffEntrySize)
	dir, err := readAt(r, woffHeaderSize, int(dirEnd-woffHeaderSize))
	if err == io.ErrUnexpectedEOF {
		return nil, woffError("table directory truncated")
	} else if err != nil {
		return nil, err
	}

	f := &Font{
		flavor:  FlavorWOFF,
		version: version,
		toc:     make(map[string]record, numTables),
	}
	type alloc struct {
		Start uint32
		End   uint32
	}
	coverage := make([]alloc, 0, numTables)
	for i := range numTables {
		entry := dir[i*woffEntrySize : (i+1)*woffEntrySize]
		tag := string(entry[:4])
		offset := binary.BigEndian.Uint32(entry[4:8])
		compLength := binary.BigEndian.Uint32(entry[8:12])
		origLength := binary.BigEndian.Uint32(entry[12:16])

		if compLength > origLength {
			return nil, woffError("compressed table larger than original")
		}
		if origLength > maxTableSize {
			return nil, woffError("table too large")
		}
		end := uint64(offset) + uint64(compLength)
		if offset < dirEnd || end > uint64(totalLength) {
			return nil, woffError("invalid table offset")
		}
		if _, dup := f.toc[tag]; dup {
			return nil, woffError("duplicate table " + tag)
		}
		f.toc[tag] = record{
			Offset:     offset,
			Length:     compLength,
			OrigLength: origLength,
		}
		coverage = append(coverage, alloc{Start: offset, End: uint32(end)})
	}

	sort.Slice(coverage, func(i, j int) bool {
		if coverage[i].Start != coverage[j].Start {
			return coverage[i].Start < coverage[j].Start
		}
		return coverage[i].End < coverage[j].End
	})
	for i := 1; i < len(coverage); i++ {
		if coverage[i-1].End > coverage[i].Start {
			return nil, woffError("overlapping tables")
		}
	}
	if last := coverage[len(coverage)-1].End; last > 0 {
		_, err = readAt(r, int64(last)-1, 1)
		if err == io.ErrUnexpectedEOF {
			return nil, woffError("table extends beyond EOF")
		} else if err != nil {
			return nil, err
		}
	}

	return f, nil
}

// readWOFFTable reads and, if needed, inflates a single WOFF table.
func (f *Font) readWOFFTable(rec record) ([]byte, error) {
	data, err := readAt(f.r, int64(rec.Offset), int(rec.Length))
	if err != nil {
		return nil, err
	}
	if rec.Length == rec.OrigLength {
		return data, nil
	}

	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	res := make([]byte, rec.OrigLength)
	_, err = io.ReadFull(zr, res)
	if err != nil {
		return nil, woffError("corrupt compressed table")
	}
	var extra [1]byte
	if n, _ := zr.Read(extra[:]); n > 0 {
		return nil, woffError("compressed table longer than declared")
	}
	return res, nil
}

func woffError(reason string) error {
	return &InvalidFontError{SubSystem: "fontfile/woff", Reason: reason}
}
