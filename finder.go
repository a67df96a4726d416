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
	"errors"
	"iter"
	"log/slog"
	"slices"

	"github.com/spf13/afero"
	"seehuhn.de/go/fontfind/fontfile"
	"seehuhn.de/go/fontfind/walk"
)

// Options control the search of a Finder.
// A nil *Options is equivalent to the zero value.
type Options struct {
	// Recursive makes the Finder descend into subdirectories.
	Recursive bool

	// Filter selects the fonts to return.
	Filter Filter

	// FS is the filesystem to search.  If this is nil, the
	// filesystem of the operating system is used.
	FS afero.Fs

	// Logger receives debug messages about skipped files.
	// If this is nil, no messages are logged.
	Logger *slog.Logger
}

// OpenFunc opens a font file.  Files which are not fonts must be
// reported by returning an error.
type OpenFunc[F Font] func(fsys afero.Fs, path string) (F, error)

// Finder searches a file or directory for fonts.
//
// A Finder is immutable and can be used to run the same search several
// times.
type Finder[F Font] struct {
	root      string
	recursive bool
	filter    Filter
	fsys      afero.Fs
	open      OpenFunc[F]
	logger    *slog.Logger
}

// New creates a Finder which opens fonts using [fontfile.Open].
//
// The root must be an existing file or directory.  All problems with the
// arguments are reported here, before any font file is read.
func New(root string, opt *Options) (*Finder[*fontfile.Font], error) {
	return NewWithOpener[*fontfile.Font](root, fontfile.Open, opt)
}

// NewWithOpener creates a Finder which uses open to construct the font
// objects.  This allows to return a font type which carries additional
// information.
func NewWithOpener[F Font](root string, open OpenFunc[F], opt *Options) (*Finder[F], error) {
	if opt == nil {
		opt = &Options{}
	}
	fsys := opt.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	logger := opt.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if _, err := walk.Files(fsys, root, opt.Recursive); err != nil {
		return nil, &FinderError{Path: root, Err: ErrInvalidInputPath, Cause: err}
	}
	if open == nil {
		return nil, &FinderError{Path: root, Err: ErrInvalidReturnType}
	}
	if err := opt.Filter.Validate(); err != nil {
		var fe *FinderError
		if errors.As(err, &fe) {
			fe.Path = root
		}
		return nil, err
	}

	f := &Finder[F]{
		root:      root,
		recursive: opt.Recursive,
		filter:    opt.Filter,
		fsys:      fsys,
		open:      open,
		logger:    logger,
	}
	return f, nil
}

// Files returns the names of all candidate files.
// The files are not opened.
func (f *Finder[F]) Files() iter.Seq[string] {
	files, err := walk.Files(f.fsys, f.root, f.recursive)
	if err != nil {
		// The root was valid when the Finder was created, but has
		// disappeared since.
		f.logger.Debug("cannot list files", "root", f.root, "error", err)
		return func(yield func(string) bool) {}
	}
	return files
}

// Fonts returns the fonts which pass the filter, in the order of [Finder.Files].
//
// Files which cannot be read or are not fonts are skipped.  Read errors
// are logged at warning level, files which are not fonts at debug level.
// Fonts which are rejected by the filter are closed before the next file
// is opened.  The caller is responsible for closing the fonts returned by
// the iterator.
func (f *Finder[F]) Fonts() iter.Seq[F] {
	return func(yield func(F) bool) {
		for path := range f.Files() {
			font, err := f.open(f.fsys, path)
			if fontfile.IsNotAFont(err) {
				f.logger.Debug("skipping file", "path", path, "error", err)
				continue
			} else if err != nil {
				f.logger.Warn("cannot open file", "path", path, "error", err)
				continue
			}

			class := Classify(font)
			if !f.filter.Keep(class) {
				f.logger.Debug("font filtered out",
					"path", path,
					"kind", class.Kind,
					"outline", class.Outline,
					"variable", class.Variable)
				font.Close()
				continue
			}

			if !yield(font) {
				return
			}
		}
	}
}

// FindFonts returns all fonts which pass the filter.
// If no fonts are found, an error wrapping [ErrNoFontsFound] is returned.
//
// Every returned font keeps its file open until it is closed.  For large
// directory trees, use [Finder.Fonts] and close each font after use:
// files which cannot be opened because the process has run out of file
// descriptors are skipped like any other unreadable file.
func (f *Finder[F]) FindFonts() ([]F, error) {
	fonts := slices.Collect(f.Fonts())
	if len(fonts) == 0 {
		return nil, f.noFonts()
	}
	return fonts, nil
}

// Validate checks whether the search finds at least one font.
// If no fonts are found, an error wrapping [ErrNoFontsFound] is returned.
// Fonts opened during the check are closed again.
func (f *Finder[F]) Validate() error {
	for font := range f.Fonts() {
		font.Close()
		return nil
	}
	return f.noFonts()
}

func (f *Finder[F]) noFonts() error {
	return &FinderError{Path: f.root, Err: ErrNoFontsFound}
}
