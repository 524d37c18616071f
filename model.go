package msgtrans

import (
	"sort"
	"strings"
)

// Kind distinguishes the two flavours of message interface.
type Kind int

const (
	KindBundle Kind = iota
	KindLogger
)

func (k Kind) String() string {
	switch k {
	case KindBundle:
		return "bundle"
	case KindLogger:
		return "logger"
	default:
		return "unknown"
	}
}

// Discriminator is the suffix appended to the interface name to form the
// primary generated type name.
func (k Kind) Discriminator() string {
	if k == KindLogger {
		return "Logger"
	}
	return "Bundle"
}

// Level is the log level of a logger method.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// GoName is the exported identifier of the level constant in this package.
func (l Level) GoName() string {
	switch l {
	case LevelDebug:
		return "LevelDebug"
	case LevelWarn:
		return "LevelWarn"
	case LevelError:
		return "LevelError"
	default:
		return "LevelInfo"
	}
}

// ParseLevel maps a directive value to a Level.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, true
	case "info", "":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

// Import is a package referenced by a method signature.
type Import struct {
	Name string
	Path string
}

// Param is one parameter of a message method.
type Param struct {
	Name     string
	Type     string
	Variadic bool
}

// Method is a translatable method of a message interface. Identity is the
// pointer: the scanner builds one Method per declaration, so two methods that
// happen to share a key remain distinct.
type Method struct {
	Name    string
	Key     string
	Message string
	Level   Level
	Params  []Param
	// Result is "string", "error" or empty for logger methods.
	Result    string
	Imports   []Import
	Interface *MessageInterface
}

// ID returns "<Interface>.<Method>", used for sorting and diagnostics.
func (m *Method) ID() string {
	if m.Interface == nil {
		return m.Name
	}
	return m.Interface.Name + "." + m.Name
}

// MessageInterface is a Go interface whose methods carry translation keys and
// default messages. It is built once by the scanner and read-only afterwards.
type MessageInterface struct {
	ImportPath  string
	PackageName string
	// Dir is the package directory; RelDir is Dir relative to the scan root.
	Dir     string
	RelDir  string
	Name    string
	Kind    Kind
	Methods []*Method
	Extends []*MessageInterface
	// Marker interfaces contribute a capability but no translatable methods.
	Marker bool
}

// Translatable reports whether the interface's methods take part in
// translation-key validation.
func (i *MessageInterface) Translatable() bool {
	return !i.Marker
}

// QualifiedName returns "<import path>.<Name>".
func (i *MessageInterface) QualifiedName() string {
	if i.ImportPath == "" {
		return i.Name
	}
	return i.ImportPath + "." + i.Name
}

// PrimaryTypeName is the name of the non-localized generated type.
func (i *MessageInterface) PrimaryTypeName() string {
	return i.Name + i.Kind.Discriminator()
}

// TypeNameFor returns the generated type name for a locale; the root locale
// yields the primary type name.
func (i *MessageInterface) TypeNameFor(l Locale) string {
	return i.PrimaryTypeName() + l.ClassSuffix()
}

// LegalMethods returns the interface's own methods plus the methods of every
// transitively embedded translatable interface, in declaration order with
// duplicates (diamond embedding) removed.
func (i *MessageInterface) LegalMethods() []*Method {
	var out []*Method
	seen := make(map[*Method]bool)
	visited := make(map[*MessageInterface]bool)
	var walk func(*MessageInterface)
	walk = func(mi *MessageInterface) {
		if visited[mi] || !mi.Translatable() {
			return
		}
		visited[mi] = true
		for _, m := range mi.Methods {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
		for _, ext := range mi.Extends {
			walk(ext)
		}
	}
	walk(i)
	return out
}

// HasMarker reports whether any transitively embedded interface is a marker.
func (i *MessageInterface) HasMarker() bool {
	visited := make(map[*MessageInterface]bool)
	var walk func(*MessageInterface) bool
	walk = func(mi *MessageInterface) bool {
		if visited[mi] {
			return false
		}
		visited[mi] = true
		for _, ext := range mi.Extends {
			if ext.Marker || walk(ext) {
				return true
			}
		}
		return false
	}
	return walk(i)
}

// TranslationKeyMap maps a method to its non-blank translated message. Maps
// are never mutated once built; Merge returns a new map.
type TranslationKeyMap map[*Method]string

// Merge returns a new map holding m overlaid by other; entries in other win.
func (m TranslationKeyMap) Merge(other TranslationKeyMap) TranslationKeyMap {
	out := make(TranslationKeyMap, len(m)+len(other))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Methods returns the keys sorted by method ID.
func (m TranslationKeyMap) Methods() []*Method {
	out := make([]*Method, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID() < out[b].ID() })
	return out
}

// ByKey flattens the map to translation key → message, for reports and tests.
func (m TranslationKeyMap) ByKey() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k.Key] = v
	}
	return out
}

// ClassModel is the unit handed to the emitter: one generated type.
type ClassModel struct {
	Interface     *MessageInterface
	TypeName      string
	SuperTypeName string
	Locale        Locale
	Translations  TranslationKeyMap
	// Primary marks the non-localized type carrying the default messages.
	Primary bool
	// Synthetic marks an empty class generated for a missing ancestor locale.
	Synthetic bool
	// Source is the translation file path, empty for primary and synthetic classes.
	Source string
}

// QualifiedName returns "<import path>.<TypeName>".
func (c ClassModel) QualifiedName() string {
	if c.Interface == nil || c.Interface.ImportPath == "" {
		return c.TypeName
	}
	return c.Interface.ImportPath + "." + c.TypeName
}

// QualifiedSuperName returns the qualified superclass name, empty for the
// primary class.
func (c ClassModel) QualifiedSuperName() string {
	if c.SuperTypeName == "" {
		return ""
	}
	if c.Interface == nil || c.Interface.ImportPath == "" {
		return c.SuperTypeName
	}
	return c.Interface.ImportPath + "." + c.SuperTypeName
}

// PrimaryClass builds the non-localized class model carrying every legal
// method's default message.
func PrimaryClass(iface *MessageInterface) ClassModel {
	defaults := make(TranslationKeyMap)
	for _, m := range iface.LegalMethods() {
		defaults[m] = m.Message
	}
	return ClassModel{
		Interface:    iface,
		TypeName:     iface.PrimaryTypeName(),
		Translations: defaults,
		Primary:      true,
	}
}
