// Package i18n loads the localized prompts and renders them with x/text.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the source locale every other catalog falls back to.
const BaseLocale = "en-US"

var ErrMissingMessage = errors.New("catalog is missing a message")

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type localeFile struct {
	Locale      string                   `yaml:"locale"`
	Conjunction string                   `yaml:"conjunction"`
	Messages    map[string]string        `yaml:"messages"`
	Plurals     map[string]pluralMessage `yaml:"plurals"`
}

type pluralMessage struct {
	Arg   int          `yaml:"arg"`
	Cases []pluralCase `yaml:"cases"`
}

type pluralCase struct {
	When string `yaml:"when"`
	Text string `yaml:"text"`
}

// Catalog holds every locale and picks the closest one for a request.
type Catalog struct {
	builder      *catalog.Builder
	matcher      language.Matcher
	tags         []language.Tag
	conjunctions map[language.Tag]string
}

// LoadEmbedded loads the catalogs shipped with the binary.
func LoadEmbedded(required []string) (*Catalog, error) {
	return LoadFromFS(embeddedLocales, required)
}

// LoadFromFS loads locales/*.yaml from fsys and checks that every required key
// resolves in every locale once the base locale is merged in.
func LoadFromFS(fsys fs.FS, required []string) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to glob locales: %w", err)
	}

	files := make(map[string]localeFile, len(paths))
	for _, p := range paths {
		file, err := readLocale(fsys, p)
		if err != nil {
			return nil, err
		}

		files[file.Locale] = file
	}

	base, ok := files[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("%w: base locale %s is not defined", ErrMissingMessage, BaseLocale)
	}

	locales := make([]string, 0, len(files))
	for locale := range files {
		if locale != BaseLocale {
			locales = append(locales, locale)
		}
	}
	sort.Strings(locales)
	locales = append([]string{BaseLocale}, locales...)

	baseTag := language.MustParse(BaseLocale)
	result := &Catalog{
		builder:      catalog.NewBuilder(catalog.Fallback(baseTag)),
		conjunctions: map[language.Tag]string{},
	}

	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("failed to parse locale %q: %w", locale, err)
		}

		file := mergeBase(files[locale], base)
		if err = checkRequired(file, required); err != nil {
			return nil, err
		}

		if err = result.register(tag, file); err != nil {
			return nil, err
		}

		result.tags = append(result.tags, tag)
		result.conjunctions[tag] = file.Conjunction
	}

	result.matcher = language.NewMatcher(result.tags)

	return result, nil
}

func readLocale(fsys fs.FS, p string) (localeFile, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return localeFile{}, fmt.Errorf("failed to read %s: %w", p, err)
	}

	var file localeFile
	if err = yaml.Unmarshal(data, &file); err != nil {
		return localeFile{}, fmt.Errorf("failed to parse %s: %w", p, err)
	}

	want := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if file.Locale != want {
		return localeFile{}, fmt.Errorf("catalog %s: locale %q must match file name", p, file.Locale)
	}

	return file, nil
}

// mergeBase fills keys a locale leaves out with the base locale's text.
func mergeBase(file, base localeFile) localeFile {
	merged := localeFile{
		Locale:      file.Locale,
		Conjunction: file.Conjunction,
		Messages:    map[string]string{},
		Plurals:     map[string]pluralMessage{},
	}

	if merged.Conjunction == "" {
		merged.Conjunction = base.Conjunction
	}

	for key, text := range base.Messages {
		merged.Messages[key] = text
	}
	for key, text := range base.Plurals {
		merged.Plurals[key] = text
	}

	for key, text := range file.Messages {
		delete(merged.Plurals, key)
		merged.Messages[key] = text
	}
	for key, text := range file.Plurals {
		delete(merged.Messages, key)
		merged.Plurals[key] = text
	}

	return merged
}

func checkRequired(file localeFile, required []string) error {
	var missing []string
	for _, key := range required {
		_, isSimple := file.Messages[key]
		_, isPlural := file.Plurals[key]
		if !isSimple && !isPlural {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s lacks %s", ErrMissingMessage, file.Locale, strings.Join(missing, ", "))
	}

	return nil
}

func (that *Catalog) register(tag language.Tag, file localeFile) error {
	for key, text := range file.Messages {
		if err := that.builder.SetString(tag, key, text); err != nil {
			return fmt.Errorf("failed to register %s for %s: %w", key, tag, err)
		}
	}

	for key, msg := range file.Plurals {
		cases := slices.Clone(msg.Cases)
		// "other" must come last or it shadows the specific cases.
		slices.SortStableFunc(cases, func(a, b pluralCase) int {
			switch {
			case a.When == "other" && b.When != "other":
				return 1
			case b.When == "other" && a.When != "other":
				return -1
			default:
				return 0
			}
		})

		selectors := make([]any, 0, len(cases)*2)
		for _, c := range cases {
			selectors = append(selectors, c.When, c.Text)
		}

		if err := that.builder.Set(tag, key, plural.Selectf(msg.Arg, "%d", selectors...)); err != nil {
			return fmt.Errorf("failed to register plural %s for %s: %w", key, tag, err)
		}
	}

	return nil
}

// Locales returns the supported locales, base first.
func (that *Catalog) Locales() []string {
	out := make([]string, len(that.tags))
	for i, tag := range that.tags {
		out[i] = tag.String()
	}

	return out
}

// Translator returns a translator for the supported locale closest to locale.
// Unknown or empty locales get the base locale.
func (that *Catalog) Translator(locale string) *Translator {
	desired, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(desired) == 0 {
		desired = []language.Tag{that.tags[0]}
	}

	_, index, _ := that.matcher.Match(desired...)
	tag := that.tags[index]

	return &Translator{
		tag:         tag,
		printer:     message.NewPrinter(tag, message.Catalog(that.builder)),
		conjunction: that.conjunctions[tag],
	}
}
