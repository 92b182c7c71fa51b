package search

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// compilePattern builds the matcher for q.
// Regex mode uses the text verbatim and ignores whole-word; literal mode escapes it.
// \b only knows ASCII word characters, so whole-word puts it on the edges that start
// or end with one and leaves the rest to wordBounded.
// Matching is case-insensitive unless CaseSensitive is set. multiline makes ^ and $
// match at line boundaries so the whole-content pattern agrees with the per-line one.
func compilePattern(text string, opts Options, multiline bool) (*regexp.Regexp, error) {
	expr := text
	if !opts.Regex {
		expr = regexp.QuoteMeta(text)
		if opts.WholeWord {
			if first, _ := utf8.DecodeRuneInString(text); isASCIIWordRune(first) {
				expr = `\b` + expr
			}
			if last, _ := utf8.DecodeLastRuneInString(text); isASCIIWordRune(last) {
				expr += `\b`
			}
		}
	}

	var flags string
	if !opts.CaseSensitive {
		flags += "i"
	}
	if multiline {
		flags += "m"
	}
	if flags != "" {
		expr = "(?" + flags + ")" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &PatternError{Pattern: text, Cause: err}
	}
	return re, nil
}

// substitute replaces every non-empty match of re in content.
// In regex mode $1 and ${name} in replacement are expanded; otherwise it is inserted as is.
// With wholeWord set, matches that wordBounded rejects are left alone.
// It returns the new content and the number of substitutions made.
func substitute(re *regexp.Regexp, content, replacement string, expand, wholeWord bool) (string, int) {
	locs := re.FindAllStringSubmatchIndex(content, -1)

	var b strings.Builder
	count, last := 0, 0
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		if wholeWord && !wordBounded(content, loc[0], loc[1]) {
			continue
		}
		b.WriteString(content[last:loc[0]])
		if expand {
			b.Write(re.ExpandString(nil, replacement, content, loc))
		} else {
			b.WriteString(replacement)
		}
		last = loc[1]
		count++
	}
	if count == 0 {
		return content, 0
	}
	b.WriteString(content[last:])
	return b.String(), count
}

// wordBounded reports whether s[start:end] is not glued to a neighbouring word rune.
// A side is only checked when the match itself begins or ends with a word rune there.
func wordBounded(s string, start, end int) bool {
	if first, _ := utf8.DecodeRuneInString(s[start:end]); isWordRune(first) && start > 0 {
		if prev, _ := utf8.DecodeLastRuneInString(s[:start]); isWordRune(prev) {
			return false
		}
	}
	if last, _ := utf8.DecodeLastRuneInString(s[start:end]); isWordRune(last) && end < len(s) {
		if next, _ := utf8.DecodeRuneInString(s[end:]); isWordRune(next) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isASCIIWordRune(r rune) bool {
	return r < utf8.RuneSelf && isWordRune(r)
}
