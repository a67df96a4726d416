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

// Package fontfind finds font files in a directory tree.
//
// A [Finder] enumerates the files below a root directory, opens every
// file as a font, classifies the font and returns the fonts which pass a
// [Filter].  Recognised are unwrapped sfnt fonts (with TrueType or CFF
// outlines) and fonts wrapped in WOFF or WOFF2 containers.
//
// A Finder is used as follows:
//
//	finder, err := fontfind.New("/usr/share/fonts", &fontfind.Options{
//		Recursive: true,
//		Filter:    fontfind.Filter{OmitStatic: true},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for font := range finder.Fonts() {
//		fmt.Println(font.Path())
//		font.Close()
//	}
//
// All problems with the arguments, for example a filter which would
// reject every font, are reported by [New].  Files which are not fonts
// are silently skipped during the search.  All errors returned by a Finder
// have type [*FinderError].
package fontfind
