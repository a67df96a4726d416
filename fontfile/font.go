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

// Package fontfile opens font files and reads their table directory.
//
// Three container formats are recognised: plain SFNT files (TrueType and
// OpenType fonts, .ttf/.otf), WOFF files and WOFF2 files.  Opening a font
// only reads the file header and the table directory; table data is read
// on demand by [Font.ReadTable].
//
// The font data is never modified.  A [Font] returned by [Open] keeps the
// underlying file open until [Font.Close] is called.
package fontfile

import (
	"errors"
	"io"
	"slices"

	"github.com/spf13/afero"
	"golang.org/x/exp/maps"
	"seehuhn.de/go/sfnt/header"
)

// Flavor describes the container a font is wrapped in.
type Flavor int

// These are the supported container flavors.
const (
	FlavorSFNT Flavor = iota
	FlavorWOFF
	FlavorWOFF2
)

func (f Flavor) String() string {
	switch f {
	case FlavorSFNT:
		return ""
	case FlavorWOFF:
		return "woff"
	case FlavorWOFF2:
		return "woff2"
	default:
		return "unknown"
	}
}

// Values of the sfnt version field.
const (
	VersionTrueType = 0x00010000
	VersionCFF      = 0x4F54544F // "OTTO"
	VersionApple    = 0x74727565 // "true"
	versionTTC      = 0x74746366 // "ttcf"
)

// record locates the data of one table.
//
// For plain sfnt and WOFF files, Offset is a file offset.  For WOFF2
// files, Offset is the position inside the decompressed table stream.
type record struct {
	Offset     uint32
	Length     uint32 // number of bytes stored
	OrigLength uint32 // length after decompression
	Transform  bool
}

// Font is an opened font file.
type Font struct {
	flavor  Flavor
	version uint32
	toc     map[string]record

	r      io.ReaderAt
	closer io.Closer
	path   string

	// WOFF2 only: location of the compressed table stream, and the
	// decompressed stream once it has been read.
	streamOffset int64
	streamLength int64
	stream       []byte
}

// Open opens the named file and reads the font header.
//
// If the file cannot be opened, the error from the filesystem is
// returned.  If the file is not a recognised font, the error is a
// [*NotAFontError].
func Open(fsys afero.Fs, path string) (*Font, error) {
	fd, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(fd)
	if err != nil {
		fd.Close()
		var notAFont *NotAFontError
		if errors.As(err, &notAFont) {
			notAFont.Path = path
		}
		return nil, err
	}
	f.path = path
	return f, nil
}

// Parse reads the font header from r.
//
// If r implements [io.Closer], the returned font takes ownership of r
// and closes it in [Font.Close].
func Parse(r io.ReaderAt) (*Font, error) {
	magic, err := readAt(r, 0, 4)
	if err == io.ErrUnexpectedEOF {
		return nil, &NotAFontError{Err: errors.New("file too short")}
	} else if err != nil {
		return nil, err
	}

	var f *Font
	switch string(magic) {
	case "wOFF":
		f, err = parseWOFF(r)
	case "wOF2":
		f, err = parseWOFF2(r)
	case "ttcf":
		err = &NotSupportedError{SubSystem: "fontfile", Feature: "font collections"}
	default:
		f, err = parseSFNT(r)
	}
	if err != nil {
		if !IsNotAFont(err) {
			err = &NotAFontError{Err: err}
		}
		return nil, err
	}

	f.r = r
	if c, ok := r.(io.Closer); ok {
		f.closer = c
	}
	return f, nil
}

// Flavor returns the container flavor of the font.
func (f *Font) Flavor() Flavor {
	return f.flavor
}

// Version returns the sfnt version of the font.
// For WOFF and WOFF2 files this is the version of the wrapped font.
func (f *Font) Version() uint32 {
	return f.version
}

// Has returns true if all the given tables are present in the font.
func (f *Font) Has(tags ...string) bool {
	for _, tag := range tags {
		if _, ok := f.toc[tag]; !ok {
			return false
		}
	}
	return true
}

// Tags returns the tags of all tables in the font, in sorted order.
func (f *Font) Tags() []string {
	tags := maps.Keys(f.toc)
	slices.Sort(tags)
	return tags
}

// Path returns the file name the font was opened from.
// The path is empty for fonts created by [Parse].
func (f *Font) Path() string {
	return f.path
}

// Close releases the file underlying the font.
func (f *Font) Close() error {
	if f.closer == nil {
		return nil
	}
	err := f.closer.Close()
	f.closer = nil
	f.stream = nil
	return err
}

// ReadTable returns the decompressed data of a table.
// If the table is not present, the error is a [*header.ErrMissing].
func (f *Font) ReadTable(tag string) ([]byte, error) {
	rec, ok := f.toc[tag]
	if !ok {
		return nil, &header.ErrMissing{TableName: tag}
	}

	switch f.flavor {
	case FlavorWOFF:
		return f.readWOFFTable(rec)
	case FlavorWOFF2:
		if rec.Transform {
			return nil, &NotSupportedError{
				SubSystem: "fontfile/woff2",
				Feature:   "transformed " + tag + " table",
			}
		}
		if f.stream == nil {
			stream, err := f.woff2Stream()
			if err != nil {
				return nil, err
			}
			f.stream = stream
		}
		return slices.Clone(f.stream[rec.Offset : rec.Offset+rec.Length]), nil
	default:
		return readAt(f.r, int64(rec.Offset), int(rec.Length))
	}
}

// WriteSFNT writes the font as an unwrapped sfnt file.
// For WOFF and WOFF2 fonts the tables are decompressed first.
func (f *Font) WriteSFNT(w io.Writer) (int64, error) {
	tables := make(map[string][]byte, len(f.toc))
	for tag := range f.toc {
		data, err := f.ReadTable(tag)
		if err != nil {
			return 0, err
		}
		tables[tag] = data
	}
	return WriteSFNT(w, f.version, tables)
}

func readAt(r io.ReaderAt, offset int64, length int) ([]byte, error) {
	res := make([]byte, length)
	n, err := r.ReadAt(res, offset)
	if n < length {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return res, nil
}

func isSupportedVersion(version uint32) bool {
	switch version {
	case VersionTrueType, VersionCFF, VersionApple:
		return true
	default:
		return false
	}
}
