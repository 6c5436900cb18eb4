package enrich

import (
	"testing"

	"jobintel-engine/internal/rules"

	"github.com/stretchr/testify/assert"
)

func testLexicon() rules.Lexicon {
	return rules.Lexicon{Skills: []rules.Skill{
		{Name: "Go", Any: []string{"go", "golang"}},
		{Name: "Python"},
		{Name: "Kubernetes", Any: []string{"kubernetes", "k8s"}},
		{Name: "C++"},
		{Name: "Node.js", Any: []string{"node.js", "nodejs"}},
	}}
}

func TestExtractSkillsWordBoundary(t *testing.T) {
	lex := testLexicon()

	// "Go" must not match inside "Google"
	assert.Empty(t, ExtractSkills("Engineer", "We integrate with Google Cloud.", lex))
	assert.Equal(t, []string{"Go"}, ExtractSkills("Engineer", "Services written in Go.", lex))
	assert.Equal(t, []string{"Go"}, ExtractSkills("Golang Engineer", "", lex))
}

func TestExtractSkillsCaseInsensitive(t *testing.T) {
	lex := testLexicon()

	got := ExtractSkills("", "Experience with PYTHON and kubernetes required.", lex)
	assert.Equal(t, []string{"Python", "Kubernetes"}, got)
}

func TestExtractSkillsLexiconOrder(t *testing.T) {
	lex := testLexicon()

	// occurrence order is Kubernetes first, but output follows the lexicon
	got := ExtractSkills("", "Kubernetes clusters running Python and Go services.", lex)
	assert.Equal(t, []string{"Go", "Python", "Kubernetes"}, got)
}

func TestExtractSkillsDedup(t *testing.T) {
	lex := testLexicon()

	// both "go" and "golang" appear; the skill is reported once
	got := ExtractSkills("Go Engineer", "Golang services in Go.", lex)
	assert.Equal(t, []string{"Go"}, got)
}

func TestExtractSkillsPunctuation(t *testing.T) {
	lex := testLexicon()

	// trailing non-word runes anchor only on the leading boundary
	assert.Equal(t, []string{"C++"}, ExtractSkills("", "Modern C++ codebase.", lex))
	assert.Equal(t, []string{"Node.js"}, ExtractSkills("", "Backend in Node.js.", lex))
}

func TestExtractSkillsEmpty(t *testing.T) {
	lex := testLexicon()

	assert.Nil(t, ExtractSkills("", "", lex))
	assert.Nil(t, ExtractSkills("", "Nothing relevant here.", lex))
}

func TestExtractSkillsStable(t *testing.T) {
	lex := testLexicon()
	desc := "Go and Python services on Kubernetes, with some C++ and Node.js."

	first := ExtractSkills("Engineer", desc, lex)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ExtractSkills("Engineer", desc, lex))
	}
}
