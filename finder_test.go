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

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"seehuhn.de/go/fontfind/fontfile"
	"seehuhn.de/go/fontfind/internal/fonttest"
	"seehuhn.de/go/fontfind/walk"
)

func TestFinderCounts(t *testing.T) {
	fsys := fonttest.NewTree()

	cases := []struct {
		recursive bool
		filter    Filter
		count     int
	}{
		{true, Filter{}, fonttest.AllFonts},
		{false, Filter{}, fonttest.TopLevelFonts},
		{true, Filter{OmitWOFF: true, OmitWOFF2: true}, fonttest.SFNTFonts},
		{true, Filter{OmitStatic: true}, fonttest.VariableFonts},
		{true, Filter{OmitVariable: true}, fonttest.StaticFonts},
		{true, Filter{OmitTrueType: true}, fonttest.PostScriptFonts},
		{true, Filter{OmitPostScript: true}, fonttest.TrueTypeFonts},
		{true, Filter{OmitSFNT: true}, fonttest.WebFonts},
		{true, Filter{OmitSFNT: true, OmitWOFF2: true}, fonttest.WOFFFonts},
		{true, Filter{OmitSFNT: true, OmitWOFF: true}, fonttest.WOFF2Fonts},
		{true, Filter{OmitWOFF: true, OmitWOFF2: true, OmitPostScript: true}, fonttest.TrueTypeSFNTFonts},
		{true, Filter{OmitWOFF: true, OmitWOFF2: true, OmitTrueType: true}, fonttest.PostScriptSFNTFonts},
		{true, Filter{OmitWOFF: true, OmitWOFF2: true, OmitVariable: true}, fonttest.StaticSFNTFonts},
		{true, Filter{OmitWOFF: true, OmitWOFF2: true, OmitStatic: true}, fonttest.VariableSFNTFonts},
		{false, Filter{OmitSFNT: true}, fonttest.WebFonts},
	}

	for i, test := range cases {
		finder, err := New("/fonts", &Options{
			Recursive: test.recursive,
			Filter:    test.filter,
			FS:        fsys,
		})
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}
		fonts, err := finder.FindFonts()
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}
		if len(fonts) != test.count {
			t.Errorf("%d: %s: found %d fonts, want %d",
				i, test.filter, len(fonts), test.count)
		}
		for _, font := range fonts {
			if !test.filter.Keep(Classify(font)) {
				t.Errorf("%d: %s should have been filtered out", i, font.Path())
			}
			font.Close()
		}
	}
}

func TestFindFontsMatchesFonts(t *testing.T) {
	finder, err := New("/fonts", &Options{
		Recursive: true,
		FS:        fonttest.NewTree(),
	})
	if err != nil {
		t.Fatal(err)
	}

	var fromSeq []string
	for font := range finder.Fonts() {
		fromSeq = append(fromSeq, font.Path())
		font.Close()
	}
	fonts, err := finder.FindFonts()
	if err != nil {
		t.Fatal(err)
	}
	var fromSlice []string
	for _, font := range fonts {
		fromSlice = append(fromSlice, font.Path())
		font.Close()
	}

	if d := cmp.Diff(fromSeq, fromSlice); d != "" {
		t.Errorf("results differ (-Fonts +FindFonts):\n%s", d)
	}
	if !slices.IsSorted(fromSlice) {
		t.Errorf("fonts not in walk order: %q", fromSlice)
	}
}

func TestFiles(t *testing.T) {
	finder, err := New("/fonts", &Options{
		Recursive: true,
		FS:        fonttest.NewTree(),
		Filter:    Filter{OmitSFNT: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for range finder.Files() {
		n++
	}
	if n != fonttest.AllFiles {
		t.Errorf("found %d files, want %d", n, fonttest.AllFiles)
	}
}

func TestSingleFile(t *testing.T) {
	fsys := fonttest.NewTree()

	finder, err := New("/fonts/Go-Regular.woff2", &Options{FS: fsys})
	if err != nil {
		t.Fatal(err)
	}
	fonts, err := finder.FindFonts()
	if err != nil {
		t.Fatal(err)
	}
	if len(fonts) != 1 || fonts[0].Path() != "/fonts/Go-Regular.woff2" {
		t.Errorf("unexpected result %v", fonts)
	}

	// a single file which is filtered out
	finder, err = New("/fonts/Go-Regular.woff2", &Options{
		FS:     fsys,
		Filter: Filter{OmitWOFF2: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = finder.FindFonts()
	if !errors.Is(err, ErrNoFontsFound) {
		t.Errorf("expected ErrNoFontsFound, got %v", err)
	}
}

func TestEmptyDir(t *testing.T) {
	root := filepath.Join("/fonts", fonttest.EmptyDir)
	finder, err := New(root, &Options{FS: fonttest.NewTree(), Recursive: true})
	if err != nil {
		t.Fatal(err)
	}

	for path := range finder.Files() {
		t.Errorf("unexpected file %q", path)
	}

	_, err = finder.FindFonts()
	if !errors.Is(err, ErrNoFontsFound) {
		t.Errorf("FindFonts: expected ErrNoFontsFound, got %v", err)
	}
	var fe *FinderError
	if !errors.As(err, &fe) || fe.Path != root {
		t.Errorf("FindFonts: wrong error %#v", err)
	}

	err = finder.Validate()
	if !errors.Is(err, ErrNoFontsFound) {
		t.Errorf("Validate: expected ErrNoFontsFound, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	finder, err := New("/fonts", &Options{FS: fonttest.NewTree()})
	if err != nil {
		t.Fatal(err)
	}
	if err := finder.Validate(); err != nil {
		t.Error(err)
	}
}

func TestInvalidInputPath(t *testing.T) {
	fsys := fonttest.NewTree()
	for _, root := range []string{"", "/missing", "/fonts/missing.ttf"} {
		_, err := New(root, &Options{FS: fsys})
		if !errors.Is(err, ErrInvalidInputPath) {
			t.Errorf("%q: expected ErrInvalidInputPath, got %v", root, err)
		}
		var fe *FinderError
		if !errors.As(err, &fe) {
			t.Errorf("%q: wrong error type %T", root, err)
		} else if fe.Cause == nil {
			t.Errorf("%q: missing cause", root)
		}
	}
}

func TestNonRegularInputPath(t *testing.T) {
	const root = "/dev/null"
	fsys := afero.NewOsFs()
	info, err := fsys.Stat(root)
	if err != nil || info.Mode().IsRegular() || info.IsDir() {
		t.Skip(root, "is not available as a device file")
	}

	_, err = New(root, &Options{FS: fsys})
	if !errors.Is(err, ErrInvalidInputPath) {
		t.Errorf("expected ErrInvalidInputPath, got %v", err)
	}
	if !errors.Is(err, walk.ErrInvalidRoot) {
		t.Errorf("cause does not wrap walk.ErrInvalidRoot: %v", err)
	}
}

func TestConflictingFilters(t *testing.T) {
	fsys := fonttest.NewTree()
	cases := []struct {
		filter Filter
		want   error
	}{
		{Filter{OmitTrueType: true, OmitPostScript: true}, ErrConflictingOutlineFilters},
		{Filter{OmitSFNT: true, OmitWOFF: true, OmitWOFF2: true}, ErrConflictingContainerFilters},
		{Filter{OmitStatic: true, OmitVariable: true}, ErrConflictingVariabilityFilters},
		{
			Filter{
				OmitTrueType: true, OmitPostScript: true,
				OmitStatic: true, OmitVariable: true,
			},
			ErrConflictingOutlineFilters,
		},
		{
			Filter{
				OmitSFNT: true, OmitWOFF: true, OmitWOFF2: true,
				OmitStatic: true, OmitVariable: true,
			},
			ErrConflictingContainerFilters,
		},
	}
	for i, test := range cases {
		_, err := New("/fonts", &Options{FS: fsys, Filter: test.filter})
		if !errors.Is(err, test.want) {
			t.Errorf("%d: expected %v, got %v", i, test.want, err)
		}
		var fe *FinderError
		if !errors.As(err, &fe) {
			t.Errorf("%d: wrong error type %T", i, err)
		} else if fe.Path != "/fonts" {
			t.Errorf("%d: wrong path %q", i, fe.Path)
		}
	}

	// an invalid path is reported before an invalid filter
	_, err := New("/missing", &Options{
		FS:     fsys,
		Filter: Filter{OmitStatic: true, OmitVariable: true},
	})
	if !errors.Is(err, ErrInvalidInputPath) {
		t.Errorf("expected ErrInvalidInputPath, got %v", err)
	}
}

// namedFont is a font type with an additional method, used to test
// custom openers.
type namedFont struct {
	*fontfile.Font
	closed *int
}

func (f *namedFont) FileName() string {
	return filepath.Base(f.Path())
}

func (f *namedFont) Close() error {
	*f.closed++
	return f.Font.Close()
}

func TestCustomOpener(t *testing.T) {
	closed := 0
	opener := func(fsys afero.Fs, path string) (*namedFont, error) {
		f, err := fontfile.Open(fsys, path)
		if err != nil {
			return nil, err
		}
		return &namedFont{Font: f, closed: &closed}, nil
	}

	finder, err := NewWithOpener("/fonts", opener, &Options{
		FS:     fonttest.NewTree(),
		Filter: Filter{OmitWOFF: true, OmitWOFF2: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	fonts, err := finder.FindFonts()
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, f := range fonts {
		names = append(names, f.FileName())
	}
	want := []string{"Go-Regular.ttf", "SourceSans3-Regular.otf"}
	if d := cmp.Diff(want, names); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}

	// The eight web fonts on the top level are opened and rejected.
	if closed != fonttest.WebFonts {
		t.Errorf("%d fonts closed, want %d", closed, fonttest.WebFonts)
	}
}

func TestNilOpener(t *testing.T) {
	_, err := NewWithOpener[*namedFont]("/fonts", nil, &Options{FS: fonttest.NewTree()})
	if !errors.Is(err, ErrInvalidReturnType) {
		t.Errorf("expected ErrInvalidReturnType, got %v", err)
	}
}

func TestEarlyBreak(t *testing.T) {
	opened := 0
	closed := 0
	opener := func(fsys afero.Fs, path string) (*namedFont, error) {
		f, err := fontfile.Open(fsys, path)
		if err != nil {
			return nil, err
		}
		opened++
		return &namedFont{Font: f, closed: &closed}, nil
	}
	finder, err := NewWithOpener("/fonts", opener, &Options{
		FS:        fonttest.NewTree(),
		Recursive: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	var first *namedFont
	for f := range finder.Fonts() {
		first = f
		break
	}
	if first == nil || first.FileName() != "Go-Regular.ttf" {
		t.Fatalf("unexpected first font %v", first)
	}
	if opened != 1 {
		t.Errorf("%d fonts opened, want 1", opened)
	}
	first.Close()
	if closed != 1 {
		t.Errorf("%d fonts closed, want 1", closed)
	}

	// Validate stops after the first font, too.
	opened, closed = 0, 0
	if err := finder.Validate(); err != nil {
		t.Fatal(err)
	}
	if opened != 1 || closed != 1 {
		t.Errorf("Validate: opened %d, closed %d", opened, closed)
	}
}

func TestLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	finder, err := New("/fonts", &Options{
		FS:     fonttest.NewTree(),
		Filter: Filter{OmitSFNT: true},
		Logger: logger,
	})
	if err != nil {
		t.Fatal(err)
	}
	fonts, err := finder.FindFonts()
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range fonts {
		f.Close()
	}

	out := buf.String()
	for _, want := range []string{"README.txt", "Go-Regular.ttf", "font filtered out"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output does not mention %q:\n%s", want, out)
		}
	}
}

func TestFileLimit(t *testing.T) {
	fsys := &fonttest.LimitFS{Fs: fonttest.NewTree(), Max: 1}
	finder, err := New("/fonts", &Options{FS: fsys, Recursive: true})
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for font := range finder.Fonts() {
		font.Close()
		n++
	}
	if n != fonttest.AllFonts {
		t.Errorf("found %d fonts, want %d", n, fonttest.AllFonts)
	}
	if fsys.InUse() != 0 {
		t.Errorf("%d files left open", fsys.InUse())
	}
}

func TestOpenErrorLogged(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))

	// Fonts returned by FindFonts stay open, so the limit is reached
	// after the first three fonts.
	fsys := &fonttest.LimitFS{Fs: fonttest.NewTree(), Max: 3}
	finder, err := New("/fonts", &Options{FS: fsys, Logger: logger})
	if err != nil {
		t.Fatal(err)
	}
	fonts, err := finder.FindFonts()
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range fonts {
		f.Close()
	}

	if len(fonts) != 3 {
		t.Errorf("found %d fonts, want 3", len(fonts))
	}
	out := buf.String()
	for _, want := range []string{"level=WARN", "cannot open file", fonttest.ErrTooManyOpenFiles.Error()} {
		if !strings.Contains(out, want) {
			t.Errorf("log output does not mention %q:\n%s", want, out)
		}
	}
}
