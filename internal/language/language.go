package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

type entry struct {
	code    string   // ISO 639-1, what whisper.cpp expects
	code3   string   // ISO 639-2 primary
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

// The languages whisper models are trained on that this daemon is
// expected to meet in practice. Tags outside the table fall through to
// BCP 47 parsing.
var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}},
	{"es", "spa", "", "Spanish", []string{"spanish"}},
	{"fr", "fra", "fre", "French", []string{"french"}},
	{"de", "deu", "ger", "German", []string{"german"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"ar", "ara", "", "Arabic", []string{"arabic"}},
	{"hi", "hin", "", "Hindi", []string{"hindi"}},
	{"nl", "nld", "dut", "Dutch", []string{"dutch"}},
	{"pl", "pol", "", "Polish", []string{"polish"}},
	{"sv", "swe", "", "Swedish", []string{"swedish"}},
	{"da", "dan", "", "Danish", []string{"danish"}},
	{"no", "nor", "", "Norwegian", []string{"norwegian"}},
	{"fi", "fin", "", "Finnish", []string{"finnish"}},
	{"uk", "ukr", "", "Ukrainian", []string{"ukrainian"}},
	{"tr", "tur", "", "Turkish", []string{"turkish"}},
}

var (
	byCode map[string]*entry
	byWord map[string]*entry
)

func init() {
	byCode = make(map[string]*entry, len(languages)*3)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode[e.code] = e
		byCode[e.code3] = e
		if e.alt3 != "" {
			byCode[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(input string) *entry {
	if e, ok := byCode[input]; ok {
		return e
	}
	if e, ok := byWord[input]; ok {
		return e
	}
	return nil
}

// Normalize resolves any recognized language identifier to the
// two-letter code whisper expects. It errors on identifiers that are
// neither in the table nor parseable as BCP 47 tags.
func Normalize(input string) (string, error) {
	cleaned := strings.ToLower(strings.TrimSpace(input))
	if cleaned == "" {
		return "", fmt.Errorf("empty language identifier")
	}
	if e := lookup(cleaned); e != nil {
		return e.code, nil
	}
	tag, err := language.Parse(cleaned)
	if err != nil {
		return "", fmt.Errorf("unrecognized language %q: %w", input, err)
	}
	base, _ := tag.Base()
	return base.String(), nil
}

// DisplayName returns a human-readable name for a recognized code, or
// the uppercased input when the code is outside the table.
func DisplayName(code string) string {
	cleaned := strings.ToLower(strings.TrimSpace(code))
	if cleaned == "" {
		return "Unknown"
	}
	if e := lookup(cleaned); e != nil {
		return e.display
	}
	return strings.ToUpper(cleaned)
}
