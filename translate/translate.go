// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate formats user visible messages for the emulator in the
// language of the host locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	tag     language.Tag
	printer *message.Printer
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("x64emu: locale: %v", err)
	}

	tag, printer = newPrinter(locales...)
}

// newPrinter selects the best match among the locales, falling back to en-US.
func newPrinter(locales ...string) (language.Tag, *message.Printer) {
	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	matched := message.MatchLanguage(locales...)
	return matched, message.NewPrinter(matched)
}

// Language returns the language messages are formatted for.
func Language() language.Tag {
	return tag
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
