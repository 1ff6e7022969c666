// Package fonts provides the font-resolution strategy used by the PDF
// report generator. A resolver is selected once at startup and injected
// into the generator; it is never swapped at runtime.
package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrFontNotFound indicates the resolver could not produce font data for
// the requested family and style. The generator fails loudly on this
// error rather than substituting another face.
var ErrFontNotFound = errors.New("font not found")

// Face describes a concrete typeface selected for rendering.
type Face struct {
	// Family is the family name registered with the renderer.
	Family string

	// Style is the renderer style string: "" for regular, "B" for bold,
	// "I" for italic, "BI" for bold italic.
	Style string

	// Bytes holds the raw TTF data for the face. Nil means the face is
	// built into the renderer and needs no font data.
	Bytes []byte
}

// Resolver maps a requested font family plus bold/italic flags to a
// concrete typeface.
type Resolver interface {
	ResolveTypeface(family string, bold, italic bool) (Face, error)
}

// styleString builds the renderer style string for the given flags.
func styleString(bold, italic bool) string {
	style := ""
	if bold {
		style += "B"
	}
	if italic {
		style += "I"
	}
	return style
}

// CoreResolver maps every request onto the renderer's built-in Helvetica
// family. It never fails and needs no font files, which makes it the
// default strategy.
type CoreResolver struct{}

// NewCoreResolver creates a resolver serving the renderer's built-in faces.
func NewCoreResolver() *CoreResolver {
	return &CoreResolver{}
}

var _ Resolver = (*CoreResolver)(nil)

// ResolveTypeface implements Resolver. The requested family is ignored;
// built-in Helvetica covers all style combinations.
func (r *CoreResolver) ResolveTypeface(family string, bold, italic bool) (Face, error) {
	return Face{
		Family: "Helvetica",
		Style:  styleString(bold, italic),
	}, nil
}

// DirResolver loads TTF files for the requested family from a directory
// on disk, typically a fonts directory beside the binary. Files are
// expected to be named "<Family>-Regular.ttf", "<Family>-Bold.ttf",
// "<Family>-Italic.ttf" or "<Family>-BoldItalic.ttf".
type DirResolver struct {
	dir string
}

// NewDirResolver creates a resolver reading font files from dir.
func NewDirResolver(dir string) *DirResolver {
	return &DirResolver{dir: dir}
}

var _ Resolver = (*DirResolver)(nil)

// ResolveTypeface implements Resolver. A missing or unreadable font file
// is an error; there is no fallback face.
func (r *DirResolver) ResolveTypeface(family string, bold, italic bool) (Face, error) {
	variant := "Regular"
	switch {
	case bold && italic:
		variant = "BoldItalic"
	case bold:
		variant = "Bold"
	case italic:
		variant = "Italic"
	}

	filename := fmt.Sprintf("%s-%s.ttf", family, variant)
	path := filepath.Join(r.dir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Face{}, fmt.Errorf("%w: %s", ErrFontNotFound, filename)
		}
		return Face{}, fmt.Errorf("failed to read font %s: %w", filename, err)
	}

	return Face{
		Family: family,
		Style:  styleString(bold, italic),
		Bytes:  data,
	}, nil
}
