package generator

import (
	"regexp"
	"strings"

	"github.com/foerderfunke/shaclgen/internal/vocab"
)

var (
	codeBlockRe = regexp.MustCompile("(?s)```(?:turtle)?\n(.*?)```")
	prefixRe    = regexp.MustCompile(`(?ms)(@prefix.*$).*`)
)

// ExtractTurtle pulls Turtle content out of an assistant reply. Fenced code
// blocks win over bare text; failing that, everything from the first
// @prefix declaration on is taken; failing that, the whole reply.
func ExtractTurtle(text string) string {
	if m := codeBlockRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := prefixRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}

// requiredPrefixes are prepended when the assistant forgot to declare them.
var requiredPrefixes = []vocab.PrefixBinding{
	{Prefix: "sh:", Namespace: vocab.NamespaceSH},
	{Prefix: "rdf:", Namespace: vocab.NamespaceRDF},
	{Prefix: "rdfs:", Namespace: vocab.NamespaceRDFS},
	{Prefix: "xsd:", Namespace: vocab.NamespaceXSD},
	{Prefix: "ff:", Namespace: vocab.NamespaceFF},
}

// NormalizeTurtle applies the local repairs that cover the common failure
// modes of assistant output: missing prefix declarations and statements
// without a terminating dot. Anything beyond that goes back to the
// assistant via the repair prompt.
func NormalizeTurtle(turtle string) string {
	lines := strings.Split(turtle, "\n")

	declared := map[string]bool{}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "@prefix") {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "@prefix"))
		if idx := strings.Index(rest, ":"); idx >= 0 {
			declared[rest[:idx+1]] = true
		}
	}

	var missing []string
	for _, binding := range requiredPrefixes {
		if !declared[binding.Prefix] {
			missing = append(missing, "@prefix "+binding.Prefix+" <"+binding.Namespace+"> .")
		}
	}
	if len(missing) > 0 {
		lines = append(append(missing, ""), lines...)
	}

	fixed := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if needsTerminator(line) {
			line += " ."
		}
		fixed = append(fixed, line)
	}
	return strings.Join(fixed, "\n")
}

// needsTerminator reports whether a line looks like a dangling statement
// end. Continuation lines (";", ",", open brackets) and comments are left
// alone.
func needsTerminator(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case '.', ';', ',', '(', '[':
		return false
	}
	return true
}
