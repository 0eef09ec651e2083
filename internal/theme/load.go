package theme

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hlview/hl/internal/record"
)

//go:embed themes/*.yaml
var stockThemesFS embed.FS

// DefaultThemeName is reserved for the embedded v1 default theme; a
// custom file named this is silently ignored (SPEC_FULL §4.8).
const DefaultThemeName = "@default"

// themeExtensions is the look-up try order (SPEC_FULL §4.8 "tries
// extensions .yaml, .toml, .json in that order; alternate .yml is not
// accepted").
var themeExtensions = []string{".yaml", ".toml", ".json"}

func formatForExt(ext string) (Format, bool) {
	switch ext {
	case ".yaml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	case ".json":
		return FormatJSON, true
	default:
		return 0, false
	}
}

// ThemeNotFoundError reports a theme name resolved by neither the custom
// directory nor the stock set, with ranked suggestions (SPEC_FULL §7
// ThemeNotFound(name, suggestions), "Jaro similarity >= 0.75, sorted by
// descending relevance").
type ThemeNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *ThemeNotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("theme %q not found", e.Name)
	}

	return fmt.Sprintf("theme %q not found, did you mean: %s?", e.Name, strings.Join(e.Suggestions, ", "))
}

// DefaultThemeDir returns the platform-specific custom theme directory
// (SPEC_FULL §6 "~/.config/hl/themes/ on Unix, %APPDATA%\hl\themes\ on
// Windows").
func DefaultThemeDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "hl", "themes")
}

// Loader resolves theme names to decoded documents (SPEC_FULL §4.8
// "theme discovery: custom directory first, then embedded stock
// themes").
type Loader struct {
	CustomDir string
	def       *V1Document
}

// NewLoader constructs a Loader rooted at customDir, which may be empty.
func NewLoader(customDir string) *Loader {
	return &Loader{CustomDir: customDir}
}

// defaultDocument decodes and caches the embedded @default theme.
func (l *Loader) defaultDocument() (*V1Document, error) {
	if l.def != nil {
		return l.def, nil
	}

	data, err := stockThemesFS.ReadFile("themes/default.yaml")
	if err != nil {
		return nil, err
	}

	doc, err := Decode(DefaultThemeName, data, FormatYAML)
	if err != nil {
		return nil, err
	}

	l.def = doc.V1
	l.def.Version = "1.0"

	return l.def, nil
}

// stockThemeNames lists the embedded stock themes besides @default,
// sorted for deterministic --list-themes output.
func stockThemeNames() []string {
	entries, err := stockThemesFS.ReadDir("themes")
	if err != nil {
		return nil
	}

	var names []string

	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if name == "default" {
			continue
		}

		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// List returns every theme name resolvable by l: custom-directory themes
// first, then the embedded stock set, @default always included.
func (l *Loader) List() []string {
	names := []string{DefaultThemeName}
	seen := map[string]bool{DefaultThemeName: true}

	if l.CustomDir != "" {
		entries, err := os.ReadDir(l.CustomDir)
		if err == nil {
			var custom []string

			for _, e := range entries {
				if e.IsDir() {
					continue
				}

				ext := filepath.Ext(e.Name())
				if _, ok := formatForExt(ext); !ok {
					continue
				}

				stem := strings.TrimSuffix(e.Name(), ext)
				if stem == DefaultThemeName || seen[stem] {
					continue
				}

				custom = append(custom, stem)
				seen[stem] = true
			}

			sort.Strings(custom)
			names = append(names, custom...)
		}
	}

	for _, name := range stockThemeNames() {
		if !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}

	return names
}

// Load resolves name to a decoded document. The empty string and
// [DefaultThemeName] both resolve to the embedded default theme.
func (l *Loader) Load(name string) (*Document, error) {
	if name == "" {
		name = DefaultThemeName
	}

	if name == DefaultThemeName {
		def, err := l.defaultDocument()
		if err != nil {
			return nil, err
		}

		return &Document{Version: 1, V1: def}, nil
	}

	if l.CustomDir != "" {
		for _, ext := range themeExtensions {
			path := filepath.Join(l.CustomDir, name+ext)

			data, err := os.ReadFile(path)
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}

				return nil, err
			}

			format, _ := formatForExt(ext)

			return Decode(path, data, format)
		}
	}

	if data, err := stockThemesFS.ReadFile("themes/" + name + ".yaml"); err == nil {
		return Decode("@"+name, data, FormatYAML)
	}

	return nil, &ThemeNotFoundError{Name: name, Suggestions: l.suggest(name)}
}

// Resolve loads name and resolves its StylePack for level, dispatching
// on the decoded document's version and layering v1 documents over the
// embedded @default theme.
func (l *Loader) Resolve(name string, level record.Level) (StylePack, error) {
	doc, err := l.Load(name)
	if err != nil {
		return StylePack{}, err
	}

	switch doc.Version {
	case 0:
		return ResolveV0(doc.V0, level)
	case 1:
		def, err := l.defaultDocument()
		if err != nil {
			return StylePack{}, err
		}

		return ResolveV1(doc.V1, def, level)
	default:
		return StylePack{}, &UnsupportedVersionError{Version: fmt.Sprintf("%d", doc.Version)}
	}
}

func (l *Loader) suggest(name string) []string {
	type scored struct {
		name  string
		score float64
	}

	var candidates []scored

	for _, n := range l.List() {
		if n == name {
			continue
		}

		if s := jaroSimilarity(name, n); s >= 0.75 {
			candidates = append(candidates, scored{name: n, score: s})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}

		return candidates[i].name < candidates[j].name
	})

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}

	return out
}

// jaroSimilarity computes the Jaro string similarity of a and b in
// [0,1]. No fuzzy-matching library appears anywhere in the retrieved
// pack, so this is hand-rolled per the classic Jaro definition
// (DESIGN.md).
func jaroSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}

	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)

	if la == 0 || lb == 0 {
		return 0
	}

	matchDist := max(la, lb)/2 - 1
	if matchDist < 0 {
		matchDist = 0
	}

	aMatched := make([]bool, la)
	bMatched := make([]bool, lb)

	matches := 0

	for i := range ra {
		lo := max(0, i-matchDist)
		hi := min(lb-1, i+matchDist)

		for j := lo; j <= hi; j++ {
			if bMatched[j] || ra[i] != rb[j] {
				continue
			}

			aMatched[i] = true
			bMatched[j] = true
			matches++

			break
		}
	}

	if matches == 0 {
		return 0
	}

	transpositions := 0
	k := 0

	for i := range ra {
		if !aMatched[i] {
			continue
		}

		for !bMatched[k] {
			k++
		}

		if ra[i] != rb[k] {
			transpositions++
		}

		k++
	}

	m := float64(matches)

	return (m/float64(la) + m/float64(lb) + (m-float64(transpositions)/2)/m) / 3
}
