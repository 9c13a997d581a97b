// Package vocab applies user-configured phrase replacements to
// transcripts, fixing words the model consistently mishears.
package vocab

import (
	"fmt"
	"regexp"
	"sort"
	"unicode"
)

type rule struct {
	re          *regexp.Regexp
	replacement string
}

// Rewriter holds compiled replacement rules. Compiled once at startup,
// immutable thereafter.
type Rewriter struct {
	rules []rule
}

// Compile builds a rewriter from a phrase→replacement map. Phrases match
// case-insensitively on word boundaries. Rules are ordered longest phrase
// first so overlapping phrases resolve deterministically.
func Compile(replacements map[string]string) (*Rewriter, error) {
	phrases := make([]string, 0, len(replacements))
	for phrase := range replacements {
		if phrase == "" {
			return nil, fmt.Errorf("empty vocabulary phrase")
		}
		phrases = append(phrases, phrase)
	}
	sort.Slice(phrases, func(i, j int) bool {
		if len(phrases[i]) != len(phrases[j]) {
			return len(phrases[i]) > len(phrases[j])
		}
		return phrases[i] < phrases[j]
	})

	r := &Rewriter{rules: make([]rule, 0, len(phrases))}
	for _, phrase := range phrases {
		re, err := regexp.Compile(phrasePattern(phrase))
		if err != nil {
			return nil, fmt.Errorf("compile vocabulary phrase %q: %w", phrase, err)
		}
		r.rules = append(r.rules, rule{re: re, replacement: replacements[phrase]})
	}
	return r, nil
}

// phrasePattern anchors the phrase on word boundaries, but only at edges
// that are word characters. A \b next to punctuation like "c++" would
// never match.
func phrasePattern(phrase string) string {
	pat := `(?i)`
	runes := []rune(phrase)
	if isWordRune(runes[0]) {
		pat += `\b`
	}
	pat += regexp.QuoteMeta(phrase)
	if isWordRune(runes[len(runes)-1]) {
		pat += `\b`
	}
	return pat
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Apply runs every rule once over text.
func (r *Rewriter) Apply(text string) string {
	for _, rule := range r.rules {
		text = rule.re.ReplaceAllString(text, rule.replacement)
	}
	return text
}

// Len returns the number of compiled rules.
func (r *Rewriter) Len() int {
	return len(r.rules)
}
