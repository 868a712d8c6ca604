// Package translate formats user visible messages for the current locale.
package translate

import (
	"github.com/jeandeaual/go-locale"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/message"
)

var printer *message.Printer

// DEFAULT_LOCALE is used when the system reports no locale.
const DEFAULT_LOCALE = "en-US"

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Debugf("nandpc: locale: %v", err)
	}

	SetLocale(locales...)
}

// SetLocale selects the best match among the locales for later messages.
func SetLocale(locales ...string) {
	if len(locales) == 0 {
		locales = []string{DEFAULT_LOCALE}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
