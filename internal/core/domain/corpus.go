package domain

import "path/filepath"

// Corpus describes a toolkit data asset that can be downloaded into the
// local data directory.
type Corpus struct {
	// Name is the downloader identifier (e.g. "punkt", "stopwords").
	Name InternedString

	// Collection is the subdirectory the toolkit unpacks the asset into
	// (e.g. "tokenizers", "corpora"). Empty when the corpus is not known.
	Collection InternedString
}

// knownCorpora maps downloader identifiers to the collection the toolkit
// files them under.
var knownCorpora = map[string]string{
	"punkt":     "tokenizers",
	"punkt_tab": "tokenizers",
	"stopwords": "corpora",
}

// LookupCorpus resolves a downloader identifier to a Corpus.
// Unknown identifiers still produce a usable Corpus, but without a
// collection its presence on disk cannot be pre-checked.
func LookupCorpus(name string) Corpus {
	c := Corpus{Name: NewInternedString(name)}
	if collection, ok := knownCorpora[name]; ok {
		c.Collection = NewInternedString(collection)
	}
	return c
}

// ResolveCorpora maps downloader identifiers to Corpus values.
func ResolveCorpora(names []InternedString) []Corpus {
	res := make([]Corpus, len(names))
	for i, name := range names {
		res[i] = LookupCorpus(name.String())
	}
	return res
}

// MarkerPaths returns data-directory relative paths whose presence indicates
// the corpus is already materialized. The downloader leaves both the archive
// and the unpacked directory behind; either one counts.
func (c Corpus) MarkerPaths() []string {
	if c.Collection.String() == "" {
		return nil
	}
	return []string{
		filepath.Join(c.Collection.String(), c.Name.String()),
		filepath.Join(c.Collection.String(), c.Name.String()+".zip"),
	}
}
