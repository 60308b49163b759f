// Package langdetect guesses the language of code snippets found in chat
// messages. Fenced blocks in chat often carry no info string at all, so
// renderers use this to label code output. Cheap structural checks run
// first; go-enry's classifier decides the rest against a snippet-oriented
// candidate set.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Fallback is returned when nothing matches with confidence.
const Fallback = "text"

// classifierCandidates bounds the enry classifier to languages that show
// up in chat snippets. An open-ended classification is both slower and
// noisier on short inputs.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detect guesses the language of one code snippet, returning a lowercase
// fence tag such as "go" or "python". It returns Fallback when the
// snippet is empty or detection stays unsure.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Fallback
	}

	// A shebang names the interpreter outright.
	if lang, ok := enry.GetLanguageByShebang(content); ok {
		return fenceTag(lang)
	}

	for _, m := range matchers {
		if m.match(trimmed) {
			return m.tag
		}
	}

	if lang, ok := enry.GetLanguageByClassifier(content, classifierCandidates); ok && lang != "" {
		return fenceTag(lang)
	}
	return Fallback
}

// DetectLines is Detect over pre-split snippet lines, the way code blocks
// in a parsed message store them.
func DetectLines(lines []string) string {
	return Detect([]byte(strings.Join(lines, "\n")))
}

// matcher couples a fence tag with a structural test for it. Matchers run
// in order of specificity, most distinctive shapes first.
type matcher struct {
	tag   string
	match func(trimmed []byte) bool
}

var matchers = []matcher{
	{tag: "go", match: looksLikeGo},
	{tag: "python", match: looksLikePython},
	{tag: "html", match: looksLikeHTML},
	{tag: "json", match: looksLikeJSON},
	{tag: "dockerfile", match: looksLikeDockerfile},
	{tag: "sql", match: looksLikeSQL},
	{tag: "rust", match: looksLikeRust},
	{tag: "javascript", match: looksLikeJavaScript},
	{tag: "yaml", match: looksLikeYAML},
}

func looksLikeGo(trimmed []byte) bool {
	return bytes.HasPrefix(trimmed, []byte("package ")) ||
		bytes.Contains(trimmed, []byte("func main()"))
}

func looksLikePython(trimmed []byte) bool {
	s := string(trimmed)
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return true
	}
	if strings.Contains(s, "__name__") || strings.Contains(s, "__main__") {
		return true
	}
	// Bare import lines, as opposed to Go's grouped "import (".
	if strings.HasPrefix(s, "import ") && !strings.Contains(s, "import (") {
		return strings.Contains(s, "from ") || !strings.Contains(s, "\"")
	}
	return false
}

func looksLikeHTML(trimmed []byte) bool {
	lower := bytes.ToLower(trimmed)
	for _, tag := range [][]byte{
		[]byte("<!doctype html"), []byte("<html"), []byte("<head>"), []byte("<body>"),
	} {
		if bytes.Contains(lower, tag) {
			return true
		}
	}
	return false
}

func looksLikeJSON(trimmed []byte) bool {
	if !bytes.HasPrefix(trimmed, []byte("{")) && !bytes.HasPrefix(trimmed, []byte("[")) {
		return false
	}
	return bytes.Contains(trimmed, []byte(`"`))
}

func looksLikeDockerfile(trimmed []byte) bool {
	if bytes.HasPrefix(trimmed, []byte("FROM ")) {
		return true
	}
	if bytes.Contains(trimmed, []byte("\nFROM ")) && bytes.Contains(trimmed, []byte("\nRUN ")) {
		return true
	}
	return bytes.Contains(trimmed, []byte("WORKDIR ")) && bytes.Contains(trimmed, []byte("COPY "))
}

func looksLikeSQL(trimmed []byte) bool {
	upper := strings.ToUpper(string(trimmed))
	for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE TABLE"} {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}

func looksLikeRust(trimmed []byte) bool {
	s := string(trimmed)
	return strings.Contains(s, "fn main()") ||
		strings.Contains(s, "println!") ||
		strings.Contains(s, "let mut ")
}

func looksLikeJavaScript(trimmed []byte) bool {
	s := string(trimmed)
	return strings.Contains(s, "console.log") ||
		strings.Contains(s, "=>") ||
		strings.Contains(s, "const ") ||
		strings.Contains(s, "let ")
}

// looksLikeYAML counts plain "key: value" lines and root list items; two
// or more reads as YAML.
func looksLikeYAML(trimmed []byte) bool {
	hits := 0
	for _, ln := range bytes.Split(trimmed, []byte("\n")) {
		ln = bytes.TrimSpace(ln)
		if len(ln) == 0 || ln[0] == '#' {
			continue
		}
		if bytes.Contains(ln, []byte(": ")) &&
			!bytes.ContainsAny(ln, "({") && ln[0] != '"' {
			hits++
		}
		if bytes.HasPrefix(ln, []byte("- ")) {
			hits++
		}
	}
	return hits >= 2
}

// fenceTag lowercases an enry language name into the tag a fence would
// carry.
func fenceTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
