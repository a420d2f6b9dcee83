package i18n

import (
	"embed"
	"encoding/json"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	once   sync.Once
	bundle *goi18n.Bundle
)

// Init loads the embedded locale bundles. Safe to call more than once.
func Init() {
	once.Do(func() {
		bundle = goi18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
		// Embedded files ship with the binary; a missing locale is a
		// packaging bug and English still works, so errors are ignored.
		_, _ = bundle.LoadMessageFileFS(localeFS, "locales/active.en.json")
		_, _ = bundle.LoadMessageFileFS(localeFS, "locales/active.es.json")
	})
}

// T resolves messageID for the given Accept-Language value, falling back
// to English, then to the ID itself.
func T(lang, messageID string) string {
	Init()
	localizer := goi18n.NewLocalizer(bundle, lang, language.English.String())
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}
