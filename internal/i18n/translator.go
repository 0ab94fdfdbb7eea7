package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Translator renders messages for a single locale.
type Translator struct {
	tag         language.Tag
	printer     *message.Printer
	conjunction string
}

func (that *Translator) Locale() string {
	return that.tag.String()
}

func (that *Translator) T(key string, args ...any) string {
	return that.printer.Sprintf(key, args...)
}

// List joins items as a spoken enumeration: "a", "a and b", "a, b, and c".
func (that *Translator) List(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " " + that.conjunction + " " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", " + that.conjunction + " " + items[len(items)-1]
	}
}
