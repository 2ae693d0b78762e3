// Package similarity scores how alike short headlines are using TF-IDF
// vectors over character trigrams of an accent-folded form of the text.
package similarity

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const gramSize = 3

// Vector is a sparse, L2-normalised term weight map.
type Vector map[string]float64

// Fold lower-cases s, strips diacritics and drops everything that is not a
// letter or digit, whitespace included. "La Liga" and "laliga" fold equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Terms returns the trigram counts of the folded text. Text shorter than a
// trigram is a single term; empty text has no terms.
func Terms(s string) map[string]int {
	folded := []rune(Fold(s))
	terms := make(map[string]int)
	if len(folded) == 0 {
		return terms
	}
	if len(folded) < gramSize {
		terms[string(folded)]++
		return terms
	}
	for i := 0; i+gramSize <= len(folded); i++ {
		terms[string(folded[i:i+gramSize])]++
	}
	return terms
}

// TFIDF builds one vector per document over the vocabulary of docs alone.
// IDF is smoothed as ln((1+n)/(1+df)) + 1 so no term weighs zero.
func TFIDF(docs []string) []Vector {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, d := range docs {
		counts[i] = Terms(d)
		for term := range counts[i] {
			df[term]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, c := range df {
		idf[term] = math.Log((1+n)/(1+float64(c))) + 1
	}

	vectors := make([]Vector, len(docs))
	for i, tc := range counts {
		v := make(Vector, len(tc))
		var norm2 float64
		for term, c := range tc {
			w := float64(c) * idf[term]
			v[term] = w
			norm2 += w * w
		}
		if norm2 > 0 {
			l := math.Sqrt(norm2)
			for term := range v {
				v[term] /= l
			}
		}
		vectors[i] = v
	}
	return vectors
}

// Cosine of two normalised vectors. A zero vector scores 0 against anything.
func Cosine(a, b Vector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot float64
	for term, w := range a {
		dot += w * b[term]
	}
	if dot > 1 {
		return 1
	}
	return dot
}

// Matrix computes the full pairwise similarity matrix for docs.
func Matrix(docs []string) [][]float64 {
	vectors := TFIDF(docs)
	m := make([][]float64, len(vectors))
	for i := range vectors {
		m[i] = make([]float64, len(vectors))
	}
	for i := range vectors {
		for j := i; j < len(vectors); j++ {
			s := Cosine(vectors[i], vectors[j])
			if i == j && len(vectors[i]) > 0 {
				s = 1
			}
			m[i][j] = s
			m[j][i] = s
		}
	}
	return m
}
