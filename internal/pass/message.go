package pass

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders a diagnostic message template with positional
// parameters (`%[1]s`-style), so a pass can build one message string for
// several call sites without caring about each site's argument order. It
// wraps golang.org/x/text/message's printer instead of fmt.Sprintf so the
// same templates are ready to localize if the CLI ever grows a --lang flag,
// without the pass authors changing how they call Format.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a Formatter for the given BCP 47 language tag.
// An empty tag defaults to English.
func NewFormatter(tag string) *Formatter {
	lt := language.English
	if tag != "" {
		if parsed, err := language.Parse(tag); err == nil {
			lt = parsed
		}
	}
	return &Formatter{printer: message.NewPrinter(lt)}
}

// Format renders template against args, e.g.
// f.Format("param %[1]q is declared twice in %[2]s", "id", "greet.soy").
func (f *Formatter) Format(template string, args ...interface{}) string {
	return f.printer.Sprintf(template, args...)
}
