package tfidf

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strings"
)

// NormL2 scales projected vectors to unit euclidean length.
const NormL2 = "l2"

// tokenPattern matches the default scikit-learn token pattern: runs of two or
// more Unicode word characters. RE2 treats \w and \b as ASCII, so the class is
// spelled out; a greedy run needs no boundary assertion.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{N}_]+`)

// Vectorizer projects text into a frozen TF-IDF vocabulary space.
// A Vectorizer is immutable after construction and safe for concurrent use.
type Vectorizer struct {
	vocabulary  map[string]int
	idf         []float64
	ngramMin    int
	ngramMax    int
	sublinearTF bool
	lowercase   bool
	norm        string
	stopWords   map[string]struct{}
}

// Options controls how a Vectorizer analyzes text.
type Options struct {
	NgramRange  [2]int
	SublinearTF bool
	StopWords   []string
	// Norm is NormL2 or empty for no normalization.
	Norm string
}

// DefaultOptions mirrors the defaults of a plain TfidfVectorizer.
func DefaultOptions() Options {
	return Options{NgramRange: [2]int{1, 1}, Norm: NormL2}
}

// vectorizerArtifact is the on-disk JSON form of a fitted vectorizer.
type vectorizerArtifact struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	NgramRange  [2]int         `json:"ngram_range"`
	SublinearTF bool           `json:"sublinear_tf"`
	Lowercase   *bool          `json:"lowercase,omitempty"`
	Norm        string         `json:"norm"`
	StopWords   []string       `json:"stop_words,omitempty"`
}

// NewVectorizer builds a vectorizer from a fitted vocabulary and IDF weights.
func NewVectorizer(vocabulary map[string]int, idf []float64, opts Options) (*Vectorizer, error) {
	if len(vocabulary) == 0 {
		return nil, fmt.Errorf("empty vocabulary")
	}
	if len(idf) != len(vocabulary) {
		return nil, fmt.Errorf("idf has %d weights for %d vocabulary terms", len(idf), len(vocabulary))
	}
	for term, col := range vocabulary {
		if col < 0 || col >= len(idf) {
			return nil, fmt.Errorf("term %q maps to column %d outside [0,%d)", term, col, len(idf))
		}
	}

	lo, hi := opts.NgramRange[0], opts.NgramRange[1]
	if lo == 0 && hi == 0 {
		lo, hi = 1, 1
	}
	if lo < 1 || hi < lo {
		return nil, fmt.Errorf("invalid ngram range [%d,%d]", lo, hi)
	}

	switch opts.Norm {
	case NormL2, "":
	default:
		return nil, fmt.Errorf("unsupported norm %q", opts.Norm)
	}

	v := &Vectorizer{
		vocabulary:  vocabulary,
		idf:         idf,
		ngramMin:    lo,
		ngramMax:    hi,
		sublinearTF: opts.SublinearTF,
		lowercase:   true,
		norm:        opts.Norm,
	}
	if len(opts.StopWords) > 0 {
		v.stopWords = make(map[string]struct{}, len(opts.StopWords))
		for _, w := range opts.StopWords {
			v.stopWords[w] = struct{}{}
		}
	}
	return v, nil
}

// ReadVectorizer decodes a vectorizer artifact.
func ReadVectorizer(r io.Reader) (*Vectorizer, error) {
	var a vectorizerArtifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode vectorizer: %w", err)
	}
	v, err := NewVectorizer(a.Vocabulary, a.IDF, Options{
		NgramRange:  a.NgramRange,
		SublinearTF: a.SublinearTF,
		StopWords:   a.StopWords,
		Norm:        a.Norm,
	})
	if err != nil {
		return nil, err
	}
	if a.Lowercase != nil {
		v.lowercase = *a.Lowercase
	}
	return v, nil
}

// WriteVectorizer encodes v as a JSON artifact.
func WriteVectorizer(w io.Writer, v *Vectorizer) error {
	stop := make([]string, 0, len(v.stopWords))
	for word := range v.stopWords {
		stop = append(stop, word)
	}
	sort.Strings(stop)

	lowercase := v.lowercase
	a := vectorizerArtifact{
		Vocabulary:  v.vocabulary,
		IDF:         v.idf,
		NgramRange:  [2]int{v.ngramMin, v.ngramMax},
		SublinearTF: v.sublinearTF,
		Lowercase:   &lowercase,
		Norm:        v.norm,
		StopWords:   stop,
	}
	if err := json.NewEncoder(w).Encode(a); err != nil {
		return fmt.Errorf("encode vectorizer: %w", err)
	}
	return nil
}

// VocabularySize returns the number of columns in the projection space.
func (v *Vectorizer) VocabularySize() int {
	return len(v.idf)
}

// Transform projects text into the vocabulary space. Terms outside the
// vocabulary contribute nothing.
func (v *Vectorizer) Transform(text string) Vector {
	counts := make(map[int]float64)
	for _, term := range v.analyze(text) {
		if col, ok := v.vocabulary[term]; ok {
			counts[col]++
		}
	}
	return v.weigh(counts)
}

func (v *Vectorizer) weigh(counts map[int]float64) Vector {
	vec := Vector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for col := range counts {
		vec.Indices = append(vec.Indices, col)
	}
	sort.Ints(vec.Indices)

	for _, col := range vec.Indices {
		tf := counts[col]
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		vec.Values = append(vec.Values, tf*v.idf[col])
	}

	if v.norm == NormL2 {
		if n := vec.Norm(); n > 0 {
			for i := range vec.Values {
				vec.Values[i] /= n
			}
		}
	}
	return vec
}

// analyze turns text into the term sequence used for vocabulary lookup.
func (v *Vectorizer) analyze(text string) []string {
	if v.lowercase {
		text = strings.ToLower(text)
	}
	tokens := tokenPattern.FindAllString(text, -1)
	if len(v.stopWords) > 0 {
		kept := tokens[:0]
		for _, t := range tokens {
			if _, stop := v.stopWords[t]; !stop {
				kept = append(kept, t)
			}
		}
		tokens = kept
	}
	return ngrams(tokens, v.ngramMin, v.ngramMax)
}

func ngrams(tokens []string, lo, hi int) []string {
	if lo == 1 && hi == 1 {
		return tokens
	}
	var terms []string
	for n := lo; n <= hi; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}
