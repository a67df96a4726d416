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

package fonttest

import (
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/image/font/gofont/goregular"
)

// Container selects the file format of a fixture.
type Container int

// These are the container formats used for fixtures.
const (
	ContainerSFNT Container = iota
	ContainerWOFF
	ContainerWOFF2
)

// File describes one file of the fixture tree.
type File struct {
	Name      string // path relative to the tree root
	Container Container
	CFF       bool
	Variable  bool
	NotAFont  bool
	GoRegular bool // use the Go Regular font instead of placeholder tables
}

// Counts for the fixture tree written by WriteTree.
const (
	AllFiles            = 14
	AllFonts            = 13
	TopLevelFonts       = 10
	TrueTypeSFNTFonts   = 2
	PostScriptSFNTFonts = 3
	SFNTFonts           = 5
	StaticSFNTFonts     = 3
	VariableSFNTFonts   = 2
	WOFFFonts           = 4
	WOFF2Fonts          = 4
	WebFonts            = 8
	StaticFonts         = 7
	VariableFonts       = 6
	TrueTypeFonts       = 6
	PostScriptFonts     = 7
)

// EmptyDir is the name of an empty subdirectory of the fixture tree.
const EmptyDir = "EMPTY_SUBDIR"

// Tree lists the files of the fixture tree.
var Tree = []File{
	{Name: "Go-Regular.ttf", Container: ContainerSFNT, GoRegular: true},
	{Name: "SourceSans3-Regular.otf", Container: ContainerSFNT, CFF: true},
	{Name: "README.txt", NotAFont: true},

	{Name: "Go-Regular.woff", Container: ContainerWOFF, GoRegular: true},
	{Name: "SourceSans3-Regular.woff", Container: ContainerWOFF, CFF: true},
	{Name: "RobotoFlex-VF.woff", Container: ContainerWOFF, Variable: true},
	{Name: "SourceSans3VF-Upright.woff", Container: ContainerWOFF, CFF: true, Variable: true},

	{Name: "Go-Regular.woff2", Container: ContainerWOFF2, GoRegular: true},
	{Name: "SourceSans3-Regular.woff2", Container: ContainerWOFF2, CFF: true},
	{Name: "RobotoFlex-VF.woff2", Container: ContainerWOFF2, Variable: true},
	{Name: "SourceSans3VF-Upright.woff2", Container: ContainerWOFF2, CFF: true, Variable: true},

	{Name: "sub/RobotoFlex-VF.ttf", Container: ContainerSFNT, Variable: true},
	{Name: "sub/SourceSans3-Bold.otf", Container: ContainerSFNT, CFF: true},
	{Name: "sub/SourceSans3VF-Upright.otf", Container: ContainerSFNT, CFF: true, Variable: true},
}

// Data returns the file contents for a fixture.
func (f File) Data() []byte {
	if f.NotAFont {
		return []byte("These fonts are used for testing.\n")
	}

	var version uint32
	var tables map[string][]byte
	if f.GoRegular {
		version, tables = GoRegular()
	} else {
		version, tables = Version(f.CFF), Tables(f.CFF, f.Variable)
	}

	switch f.Container {
	case ContainerWOFF:
		return WOFF(version, tables)
	case ContainerWOFF2:
		return WOFF2(version, tables)
	default:
		if f.GoRegular {
			return goregular.TTF
		}
		return SFNT(version, tables)
	}
}

// WriteTree writes the fixture tree into the directory root of fsys.
func WriteTree(fsys afero.Fs, root string) error {
	err := fsys.MkdirAll(filepath.Join(root, EmptyDir), 0o755)
	if err != nil {
		return err
	}
	for _, f := range Tree {
		path := filepath.Join(root, filepath.FromSlash(f.Name))
		err := fsys.MkdirAll(filepath.Dir(path), 0o755)
		if err != nil {
			return err
		}
		err = afero.WriteFile(fsys, path, f.Data(), 0o644)
		if err != nil {
			return err
		}
	}
	return nil
}

// NewTree returns an in-memory filesystem containing the fixture tree
// in the directory "/fonts".
func NewTree() afero.Fs {
	fsys := afero.NewMemMapFs()
	if err := WriteTree(fsys, "/fonts"); err != nil {
		panic(err)
	}
	return fsys
}
