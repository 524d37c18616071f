package msgtrans

// Aggregator merges translations across interface embedding. Ancestor results
// are memoized, so one Aggregator serves one interface for one pass.
type Aggregator struct {
	discovery *Discovery
	encoding  string
	diags     *Diagnostics

	ancestors map[*MessageInterface]TranslationKeyMap
	inFlight  map[*MessageInterface]bool
}

// NewAggregator returns an Aggregator reading files found by d.
func NewAggregator(d *Discovery, encoding string, diags *Diagnostics) *Aggregator {
	return &Aggregator{
		discovery: d,
		encoding:  encoding,
		diags:     diags,
		ancestors: make(map[*MessageInterface]TranslationKeyMap),
		inFlight:  make(map[*MessageInterface]bool),
	}
}

// Translations returns the merged map for one translation file of its
// interface: ancestor interfaces' translations first, the file's own
// validated entries last so they win. A failure to load the file itself is
// returned; failures in ancestor files are reported and skipped.
func (a *Aggregator) Translations(file TranslationFile) (TranslationKeyMap, error) {
	iface := file.Interface
	acc := a.inherited(iface)

	own, err := a.validateFile(iface, file, a.diags)
	if err != nil {
		return nil, err
	}
	return acc.Merge(own), nil
}

// inherited unions the translations of every translatable interface that
// iface embeds directly.
func (a *Aggregator) inherited(iface *MessageInterface) TranslationKeyMap {
	acc := make(TranslationKeyMap)
	for _, ext := range iface.Extends {
		if !ext.Translatable() {
			continue
		}
		acc = acc.Merge(a.interfaceTranslations(ext))
	}
	return acc
}

// interfaceTranslations is an ancestor's own recursive contribution: its
// ancestors, then each of its own files, less specific locales first.
// Ancestors are message interfaces of the same run whose own pass warns about
// their files, so key warnings raised here are dropped.
func (a *Aggregator) interfaceTranslations(iface *MessageInterface) TranslationKeyMap {
	if m, ok := a.ancestors[iface]; ok {
		return m
	}
	if a.inFlight[iface] {
		a.diags.Notef(iface.Name, "", "embedding cycle through %s ignored", iface.QualifiedName())
		return nil
	}
	a.inFlight[iface] = true
	defer delete(a.inFlight, iface)

	acc := a.inherited(iface)
	files, err := a.discovery.Files(iface)
	if err != nil {
		a.diags.Error(iface.Name, "", err)
	}
	for _, f := range files {
		own, err := a.validateFile(iface, f, NewDiagnostics())
		if err != nil {
			a.diags.Error(iface.Name, f.Path, err)
			continue
		}
		acc = acc.Merge(own)
	}
	a.ancestors[iface] = acc
	return acc
}

func (a *Aggregator) validateFile(iface *MessageInterface, file TranslationFile, diags *Diagnostics) (TranslationKeyMap, error) {
	raw, err := LoadTranslations(file.Path, a.encoding)
	if err != nil {
		return nil, err
	}
	return ValidateTranslations(iface.Name, iface.LegalMethods(), raw, file.Path, diags), nil
}
