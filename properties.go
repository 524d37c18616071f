package msgtrans

import (
	"fmt"
	"strings"

	"github.com/magiconair/properties"
)

// Encoding names accepted in config and flags.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "iso-8859-1"
)

func propertiesEncoding(name string) (properties.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		return properties.UTF8, nil
	case EncodingLatin1, "latin1", "latin-1":
		return properties.ISO_8859_1, nil
	}
	return properties.UTF8, fmt.Errorf("unsupported encoding %q (want %s or %s)", name, EncodingUTF8, EncodingLatin1)
}

// LoadTranslations reads a translation file into a key → raw value map.
// Blank values are kept so the validator can tell them apart from absent keys.
// ${...} expansion is disabled: messages are literal format strings.
func LoadTranslations(path, encoding string) (map[string]string, error) {
	enc, err := propertiesEncoding(encoding)
	if err != nil {
		return nil, err
	}
	l := &properties.Loader{Encoding: enc, DisableExpansion: true}
	p, err := l.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrLoad, path, err)
	}
	return p.Map(), nil
}
