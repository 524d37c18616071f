package msgtrans

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TranslationFile is a translation file on disk belonging to one interface.
type TranslationFile struct {
	Interface *MessageInterface
	Name      TranslationFileName
	Path      string
}

// Discovery locates translation files. Listings are memoized per interface, so
// a Discovery must not outlive one generation pass.
type Discovery struct {
	// Root, when set, replaces the package directory: files are looked up in
	// Root joined with the package directory relative to the scan root.
	Root  string
	cache map[*MessageInterface][]TranslationFile
}

// NewDiscovery returns a Discovery for one pass.
func NewDiscovery(root string) *Discovery {
	return &Discovery{Root: root, cache: make(map[*MessageInterface][]TranslationFile)}
}

// Dir resolves the directory holding the interface's translation files.
func (d *Discovery) Dir(iface *MessageInterface) string {
	if d.Root != "" {
		return filepath.Join(d.Root, filepath.FromSlash(iface.RelDir))
	}
	return iface.Dir
}

// Files returns the interface's translation files, less specific locales
// first. A missing directory yields no files; any other listing failure is
// wrapped in ErrDiscovery.
func (d *Discovery) Files(iface *MessageInterface) ([]TranslationFile, error) {
	if files, ok := d.cache[iface]; ok {
		return files, nil
	}
	dir := d.Dir(iface)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			d.cache[iface] = nil
			return nil, nil
		}
		return nil, fmt.Errorf("%w %s: %v", ErrDiscovery, dir, err)
	}

	var files []TranslationFile
	seen := make(map[Locale]bool)
	for _, e := range entries {
		if e.IsDir() || !isTranslationCandidate(iface.Name, e.Name()) {
			continue
		}
		name, err := ParseTranslationFileName(iface.Name, e.Name())
		if err != nil {
			continue
		}
		if seen[name.Locale] {
			continue
		}
		seen[name.Locale] = true
		files = append(files, TranslationFile{
			Interface: iface,
			Name:      name,
			Path:      filepath.Join(dir, e.Name()),
		})
	}
	SortFiles(files)
	d.cache[iface] = files
	return files, nil
}

// Lookup returns the discovered file with the given name, if any.
func (d *Discovery) Lookup(iface *MessageInterface, name TranslationFileName) (TranslationFile, bool, error) {
	files, err := d.Files(iface)
	if err != nil {
		return TranslationFile{}, false, err
	}
	for _, f := range files {
		if f.Name == name {
			return f, true, nil
		}
	}
	return TranslationFile{}, false, nil
}

// SortFiles orders files by locale depth, then by locale string.
func SortFiles(files []TranslationFile) {
	sort.SliceStable(files, func(a, b int) bool {
		la, lb := files[a].Name.Locale, files[b].Name.Locale
		if la.Depth() != lb.Depth() {
			return la.Depth() < lb.Depth()
		}
		return la.String() < lb.String()
	})
}

func isTranslationCandidate(iface, name string) bool {
	if strings.HasSuffix(name, GeneratedSuffix) {
		return false
	}
	return strings.HasPrefix(name, iface+i18nMarker) && strings.HasSuffix(name, PropertiesExt)
}
