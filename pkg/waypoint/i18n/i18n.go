// Package i18n renders navigation failures as localized, user-facing text.
package i18n

import (
	"embed"
	"errors"
	"sync"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/config"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
)

//go:embed locales/*.toml
var locales embed.FS

const (
	msgUnknown   = "unknown"
	msgRouteFile = "invalid_route_file"
)

var (
	bundleOnce sync.Once
	bundle     *goi18n.Bundle
	tags       []language.Tag
	matcher    language.Matcher
)

func load() {
	bundleOnce.Do(func() {
		bundle = goi18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		entries, err := locales.ReadDir("locales")
		if err != nil {
			internal.GetInternalLogger().Error("Failed to list locales", "error", err)
			return
		}
		for _, e := range entries {
			if _, err := bundle.LoadMessageFileFS(locales, "locales/"+e.Name()); err != nil {
				internal.GetInternalLogger().Error("Failed to load locale", "file", e.Name(), "error", err)
			}
		}
		tags = bundle.LanguageTags()
		matcher = language.NewMatcher(tags)
	})
}

// Languages returns the languages messages are available in, English first.
func Languages() []language.Tag {
	load()
	return append([]language.Tag(nil), tags...)
}

// Match picks the best supported language for the given preferences, which
// may be tags or Accept-Language strings.
func Match(prefs ...string) language.Tag {
	load()
	tag, _ := language.MatchStrings(matcher, prefs...)
	base, _ := tag.Base()
	return language.Make(base.String())
}

// Describe renders err for a user in the given language. It returns an empty
// string for a nil error.
func Describe(err error, tag language.Tag) string {
	if err == nil {
		return ""
	}
	load()

	id, data := message(err)
	localizer := goi18n.NewLocalizer(bundle, tag.String(), language.English.String())
	text, lerr := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if lerr != nil {
		internal.GetInternalLogger().Warn("Failed to localize error", "message", id, "error", lerr)
		return err.Error()
	}
	return text
}

// message maps err onto a message id and its template data.
func message(err error) (string, map[string]string) {
	var rerr *router.Error
	if errors.As(err, &rerr) && rerr.Kind != router.KindUnknown {
		detail := rerr.Message
		if detail == "" && rerr.Err != nil {
			detail = rerr.Err.Error()
		}
		return rerr.Kind.String(), map[string]string{
			"ID":        rerr.ID.Name(),
			"Presenter": rerr.PresenterID.Name(),
			"Detail":    detail,
		}
	}
	if errors.Is(err, config.ErrInvalid) {
		return msgRouteFile, map[string]string{"Detail": err.Error()}
	}
	return msgUnknown, map[string]string{"Detail": err.Error()}
}
