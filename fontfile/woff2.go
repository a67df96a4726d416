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
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

// https://www.w3.org/TR/WOFF2/

const woff2HeaderSize = 48

// woff2KnownTags lists the tags which can be encoded using the six
// low bits of the flags byte in a WOFF2 table directory entry.
var woff2KnownTags = [63]string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca", "prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern", "LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS", "GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL", "SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar", "fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar", "mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat", "Gloc", "Feat", "Sill",
}

// parseWOFF2 reads the header and table directory of a WOFF2 file.
func parseWOFF2(r io.ReaderAt) (*Font, error) {
	buf, err := readAt(r, 0, woff2HeaderSize)
	if err == io.ErrUnexpectedEOF {
		return nil, woff2Error("header truncated")
	} else if err != nil {
		return nil, err
	}

	version := binary.BigEndian.Uint32(buf[4:8])
	numTables := int(binary.BigEndian.Uint16(buf[12:14]))
	reserved := binary.BigEndian.Uint16(buf[14:16])
	totalCompressedSize := binary.BigEndian.Uint32(buf[20:24])

	if version == versionTTC {
		return nil, &NotSupportedError{
			SubSystem: "fontfile/woff2",
			Feature:   "font collections",
		}
	}
	if !isSupportedVersion(version) {
		return nil, &NotSupportedError{
			SubSystem: "fontfile/woff2",
			Feature:   fmt.Sprintf("sfnt version 0x%08x", version),
		}
	}
	if reserved != 0 {
		return nil, woff2Error("non-zero reserved field")
	}
	if numTables == 0 {
		return nil, woff2Error("no tables found")
	}

	// The table directory has variable length.  Each entry uses at most
	// 1 + 4 + 5 + 5 bytes.
	dirReader := bufio.NewReader(io.NewSectionReader(r, woff2HeaderSize, int64(numTables)*15))
	counter := &countingReader{r: dirReader}

	f := &Font{
		flavor:  FlavorWOFF2,
		version: version,
		toc:     make(map[string]record, numTables),
	}
	var streamPos uint64
	for range numTables {
		var flags [1]byte
		if _, err := io.ReadFull(counter, flags[:]); err != nil {
			return nil, woff2Error("table directory truncated")
		}

		var tag string
		if idx := flags[0] & 0x3F; idx == 0x3F {
			var tagBuf [4]byte
			if _, err := io.ReadFull(counter, tagBuf[:]); err != nil {
				return nil, woff2Error("table directory truncated")
			}
			tag = string(tagBuf[:])
		} else {
			tag = woff2KnownTags[idx]
		}

		origLength, err := readUIntBase128(counter)
		if err != nil {
			return nil, err
		}

		// For glyf and loca, transform version 3 is the null transform.
		// For all other tables, version 0 is the null transform.
		transformVersion := flags[0] >> 6
		transformed := transformVersion != 0
		if tag == "glyf" || tag == "loca" {
			transformed = transformVersion != 3
		}

		length := origLength
		if transformed {
			length, err = readUIntBase128(counter)
			if err != nil {
				return nil, err
			}
		}
		if tag == "loca" && transformed && length != 0 {
			return nil, woff2Error("transformed loca table must be empty")
		}

		if _, dup := f.toc[tag]; dup {
			return nil, woff2Error("duplicate table " + tag)
		}
		f.toc[tag] = record{
			Offset:     uint32(streamPos),
			Length:     length,
			OrigLength: origLength,
			Transform:  transformed,
		}
		streamPos += uint64(length)
		if streamPos > maxTableSize {
			return nil, woff2Error("table data too large")
		}
	}
	f.streamOffset = woff2HeaderSize + counter.n
	f.streamLength = int64(totalCompressedSize)

	if f.streamLength == 0 {
		return nil, woff2Error("missing table data")
	}
	_, err = readAt(r, f.streamOffset+f.streamLength-1, 1)
	if err == io.ErrUnexpectedEOF {
		return nil, woff2Error("table data extends beyond EOF")
	} else if err != nil {
		return nil, err
	}

	return f, nil
}

// woff2Stream decompresses the table data of a WOFF2 font.
func (f *Font) woff2Stream() ([]byte, error) {
	var total uint64
	for _, rec := range f.toc {
		if end := uint64(rec.Offset) + uint64(rec.Length); end > total {
			total = end
		}
	}

	br := brotli.NewReader(io.NewSectionReader(f.r, f.streamOffset, f.streamLength))
	res := make([]byte, total)
	_, err := io.ReadFull(br, res)
	if err != nil {
		return nil, woff2Error("corrupt table data")
	}
	return res, nil
}

// readUIntBase128 reads a variable-length unsigned integer as used in
// the WOFF2 table directory.
func readUIntBase128(r io.ByteReader) (uint32, error) {
	var accum uint32
	for i := range 5 {
		b, err := r.ReadByte()
		if err != nil {
			return 0, woff2Error("table directory truncated")
		}
		if i == 0 && b == 0x80 {
			return 0, woff2Error("leading zeros in UIntBase128")
		}
		if accum&0xFE000000 != 0 {
			return 0, woff2Error("UIntBase128 overflow")
		}
		accum = accum<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return accum, nil
		}
	}
	return 0, woff2Error("UIntBase128 longer than 5 bytes")
}

// countingReader keeps track of the number of bytes consumed.
type countingReader struct {
	r *bufio.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.n++
	}
	return b, err
}

func woff2Error(reason string) error {
	return &InvalidFontError{SubSystem: "fontfile/woff2", Reason: reason}
}
