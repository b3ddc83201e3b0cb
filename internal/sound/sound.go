// Package sound holds the built-in sound catalog and helpers for the data
// URIs used as sound references.
package sound

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

// Sound is a named sound reference.
type Sound struct {
	Name string
	URI  string
}

// Default is the sound used when none is configured.
const Default = Sunrise

// ErrNotDataURI is returned by Decode for references that are not data URIs.
var ErrNotDataURI = errors.New("not a data URI")

// Catalog lists the built-in sounds in display order.
//
//nolint:gochecknoglobals // Read-only table.
var Catalog = []Sound{
	{Name: "Sunrise", URI: Sunrise},
	{Name: "Uplift", URI: Uplift},
	{Name: "Digital Pulse", URI: DigitalPulse},
	{Name: "Zen Bells", URI: ZenBells},
}

// Lookup resolves a catalog name (case-insensitive) to its sound. Any other
// value is treated as a literal sound reference.
func Lookup(nameOrURI string) Sound {
	for _, s := range Catalog {
		if strings.EqualFold(s.Name, nameOrURI) {
			return s
		}
	}

	return Sound{Name: nameOrURI, URI: nameOrURI}
}

// NameOf returns the catalog name for uri, or "custom".
func NameOf(uri string) string {
	for _, s := range Catalog {
		if s.URI == uri {
			return s.Name
		}
	}

	return "custom"
}

// Decode extracts the media type and payload of a data URI.
func Decode(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, ErrNotDataURI
	}

	parsed, err := dataurl.DecodeString(uri)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrNotDataURI, err)
	}

	return parsed.ContentType(), parsed.Data, nil
}

// Extension guesses a file extension for a media type.
func Extension(mediaType string) string {
	switch strings.ToLower(mediaType) {
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/ogg":
		return ".ogg"
	default:
		return ".bin"
	}
}
