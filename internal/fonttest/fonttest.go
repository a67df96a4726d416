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

// Package fonttest generates font files for use in unit tests.
//
// The synthetic fonts only contain a table directory with short
// placeholder tables, which is enough to exercise the classification
// code.  Real font data is taken from the Go fonts.
package fonttest

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zlib"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/fontfind/fontfile"
)

// Tables returns placeholder tables for a synthetic font.
// If cff is set, the tables describe a font with CFF outlines,
// otherwise a font with TrueType outlines.
func Tables(cff, variable bool) map[string][]byte {
	head := make([]byte, 54)
	binary.BigEndian.PutUint32(head[0:4], 0x00010000)
	binary.BigEndian.PutUint32(head[12:16], 0x5F0F3CF5)
	binary.BigEndian.PutUint16(head[18:20], 1000)

	tables := map[string][]byte{
		"head": head,
		"name": {0, 0, 0, 0, 0, 6},
	}
	if cff {
		tables["CFF "] = []byte{1, 0, 4, 1, 0, 1, 1, 1}
	} else {
		tables["glyf"] = make([]byte, 12)
		tables["loca"] = []byte{0, 0, 0, 6}
	}
	if variable {
		tables["fvar"] = []byte{0, 1, 0, 0, 0, 16, 0, 2, 0, 1, 0, 20, 0, 0, 0, 12}
	}
	return tables
}

// Version returns the sfnt version for a font with the given outlines.
func Version(cff bool) uint32 {
	if cff {
		return fontfile.VersionCFF
	}
	return fontfile.VersionTrueType
}

// SFNT returns an unwrapped sfnt font file.
func SFNT(version uint32, tables map[string][]byte) []byte {
	buf := &bytes.Buffer{}
	_, err := fontfile.WriteSFNT(buf, version, tables)
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// GoRegular returns the tables of the Go Regular font.
func GoRegular() (uint32, map[string][]byte) {
	f, err := fontfile.Parse(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}
	tables := make(map[string][]byte)
	for _, tag := range f.Tags() {
		data, err := f.ReadTable(tag)
		if err != nil {
			panic(err)
		}
		tables[tag] = data
	}
	return f.Version(), tables
}

// WOFF returns a WOFF file containing the given tables.
// Tables are compressed whenever this reduces their size.
func WOFF(version uint32, tables map[string][]byte) []byte {
	tags := SortedTags(tables)
	numTables := len(tags)

	type entry struct {
		Tag          [4]byte
		Offset       uint32
		CompLength   uint32
		OrigLength   uint32
		OrigChecksum uint32
	}
	entries := make([]entry, numTables)
	body := &bytes.Buffer{}
	offset := uint32(44 + 20*numTables)
	totalSfntSize := uint32(12 + 16*numTables)
	for i, tag := range tags {
		data := tables[tag]
		stored := deflate(data)
		if len(stored) >= len(data) {
			stored = data
		}

		copy(entries[i].Tag[:], tag)
		entries[i].Offset = offset + uint32(body.Len())
		entries[i].CompLength = uint32(len(stored))
		entries[i].OrigLength = uint32(len(data))
		entries[i].OrigChecksum = checksum(data)

		body.Write(stored)
		for body.Len()%4 != 0 {
			body.WriteByte(0)
		}
		totalSfntSize += 4 * ((uint32(len(data)) + 3) / 4)
	}

	header := struct {
		Signature      uint32
		Flavor         uint32
		Length         uint32
		NumTables      uint16
		Reserved       uint16
		TotalSfntSize  uint32
		MajorVersion   uint16
		MinorVersion   uint16
		MetaOffset     uint32
		MetaLength     uint32
		MetaOrigLength uint32
		PrivOffset     uint32
		PrivLength     uint32
	}{
		Signature:     0x774F4646, // "wOFF"
		Flavor:        version,
		Length:        offset + uint32(body.Len()),
		NumTables:     uint16(numTables),
		TotalSfntSize: totalSfntSize,
		MajorVersion:  1,
	}

	out := &bytes.Buffer{}
	_ = binary.Write(out, binary.BigEndian, header)
	_ = binary.Write(out, binary.BigEndian, entries)
	out.Write(body.Bytes())
	return out.Bytes()
}

// WOFF2 returns a WOFF2 file containing the given tables.
// All tables use the null transform.
func WOFF2(version uint32, tables map[string][]byte) []byte {
	return woff2(version, tables, false)
}

// WOFF2Transformed returns a WOFF2 file where the glyf and loca tables
// are marked as transformed.  The glyf data is stored unchanged as the
// transformed table, the loca table is stored with length zero.  Such a
// file can be listed, but the glyf and loca tables cannot be read.
func WOFF2Transformed(version uint32, tables map[string][]byte) []byte {
	return woff2(version, tables, true)
}

func woff2(version uint32, tables map[string][]byte, transform bool) []byte {
	tags := SortedTags(tables)

	dir := &bytes.Buffer{}
	stream := &bytes.Buffer{}
	totalSfntSize := uint32(12 + 16*len(tags))
	for _, tag := range tags {
		data := tables[tag]
		isGlyf := tag == "glyf" || tag == "loca"

		flags := byte(0x3F)
		for i, known := range knownTags {
			if known == tag {
				flags = byte(i)
				break
			}
		}
		if isGlyf && !transform {
			// transform version 3 is the null transform for glyf and loca
			flags |= 3 << 6
		}
		dir.WriteByte(flags)
		if flags&0x3F == 0x3F {
			dir.WriteString(tag)
		}
		dir.Write(AppendUIntBase128(nil, uint32(len(data))))
		totalSfntSize += 4 * ((uint32(len(data)) + 3) / 4)

		switch {
		case !isGlyf || !transform:
			stream.Write(data)
		case tag == "glyf":
			dir.Write(AppendUIntBase128(nil, uint32(len(data))))
			stream.Write(data)
		default: // the transformed loca table is always empty
			dir.Write(AppendUIntBase128(nil, 0))
		}
	}

	compressed := &bytes.Buffer{}
	bw := brotli.NewWriter(compressed)
	_, _ = bw.Write(stream.Bytes())
	if err := bw.Close(); err != nil {
		panic(err)
	}
	compressedSize := uint32(compressed.Len())
	for compressed.Len()%4 != 0 {
		// the padding is not part of totalCompressedSize
		compressed.WriteByte(0)
	}

	header := struct {
		Signature           uint32
		Flavor              uint32
		Length              uint32
		NumTables           uint16
		Reserved            uint16
		TotalSfntSize       uint32
		TotalCompressedSize uint32
		MajorVersion        uint16
		MinorVersion        uint16
		MetaOffset          uint32
		MetaLength          uint32
		MetaOrigLength      uint32
		PrivOffset          uint32
		PrivLength          uint32
	}{
		Signature:           0x774F4632, // "wOF2"
		Flavor:              version,
		Length:              uint32(48 + dir.Len() + compressed.Len()),
		NumTables:           uint16(len(tags)),
		TotalSfntSize:       totalSfntSize,
		TotalCompressedSize: compressedSize,
		MajorVersion:        1,
	}

	out := &bytes.Buffer{}
	_ = binary.Write(out, binary.BigEndian, header)
	out.Write(dir.Bytes())
	out.Write(compressed.Bytes())
	return out.Bytes()
}

// AppendUIntBase128 appends the WOFF2 variable-length encoding of x to buf.
func AppendUIntBase128(buf []byte, x uint32) []byte {
	var tmp [5]byte
	n := 0
	for {
		tmp[4-n] = byte(x & 0x7F)
		n++
		x >>= 7
		if x == 0 {
			break
		}
	}
	for i := 5 - n; i < 4; i++ {
		tmp[i] |= 0x80
	}
	return append(buf, tmp[5-n:]...)
}

func deflate(data []byte) []byte {
	buf := &bytes.Buffer{}
	zw := zlib.NewWriter(buf)
	_, _ = zw.Write(data)
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func checksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var word [4]byte
		copy(word[:], data[i:])
		sum += binary.BigEndian.Uint32(word[:])
	}
	return sum
}

// SortedTags returns the table tags in sorted order.
func SortedTags(tables map[string][]byte) []string {
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

var knownTags = [...]string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca", "prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern", "LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS", "GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL", "SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar", "fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar", "mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat", "Gloc", "Feat", "Sill",
}
