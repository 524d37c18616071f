package msgtrans

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magiconair/properties"
)

// SkeletonFileName returns the name of the translation skeleton for iface.
// The placeholder suffix keeps the file out of discovery until it is renamed.
func SkeletonFileName(iface *MessageInterface) string {
	return iface.Name + GeneratedSuffix
}

// RenderSkeleton builds the skeleton properties for iface: one entry per
// translation key with the default message as its value and the declaring
// method as a comment. Methods sharing a key produce a single entry.
func RenderSkeleton(iface *MessageInterface) (*properties.Properties, error) {
	p := properties.NewProperties()
	p.DisableExpansion = true
	for _, m := range iface.LegalMethods() {
		if _, ok := p.Get(m.Key); ok {
			p.SetComments(m.Key, append(p.GetComments(m.Key), m.ID()))
			continue
		}
		if _, _, err := p.Set(m.Key, m.Message); err != nil {
			return nil, fmt.Errorf("skeleton %s: key %s: %w", iface.QualifiedName(), m.Key, err)
		}
		p.SetComments(m.Key, []string{m.ID()})
	}
	return p, nil
}

// WriteSkeleton writes the translation skeleton for iface into dir and
// returns its path. Existing skeletons are overwritten; real translation
// files never are, since they carry a locale suffix.
func WriteSkeleton(iface *MessageInterface, dir, encoding string) (string, error) {
	enc, err := propertiesEncoding(encoding)
	if err != nil {
		return "", err
	}
	p, err := RenderSkeleton(iface)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, SkeletonFileName(iface))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fmt.Fprintf(f, "# Translation skeleton for %s.\n", iface.QualifiedName())
	fmt.Fprintf(f, "# Rename to %s.i18n_<lang>[_<COUNTRY>[_<VARIANT>]]%s and translate the values.\n\n", iface.Name, PropertiesExt)
	if _, err := p.WriteComment(f, "# ", enc); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
