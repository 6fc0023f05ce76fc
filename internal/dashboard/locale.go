package dashboard

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

// dateLayouts are short numeric date formats keyed by supported locale.
var dateLayouts = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, "1/2/2006"},
	{language.BritishEnglish, "02/01/2006"},
	{language.German, "2.1.2006"},
	{language.French, "02/01/2006"},
	{language.Spanish, "2/1/2006"},
	{language.Italian, "2/1/2006"},
	{language.BrazilianPortuguese, "02/01/2006"},
	{language.Dutch, "2-1-2006"},
	{language.Russian, "02.01.2006"},
	{language.Japanese, "2006/1/2"},
	{language.Chinese, "2006/1/2"},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(dateLayouts))
	for i, d := range dateLayouts {
		tags[i] = d.tag
	}

	return language.NewMatcher(tags)
}()

// Locale renders dates the way the viewer expects.
type Locale struct {
	Tag        language.Tag
	DateLayout string
	Location   *time.Location
}

// MatchLocale picks the closest supported locale for the given preferences,
// falling back to US English.
func MatchLocale(loc *time.Location, prefs ...language.Tag) Locale {
	if loc == nil {
		loc = time.Local
	}

	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		idx = 0
	}

	return Locale{
		Tag:        dateLayouts[idx].tag,
		DateLayout: dateLayouts[idx].layout,
		Location:   loc,
	}
}

// LocaleFromAcceptLanguage parses an HTTP Accept-Language header.
func LocaleFromAcceptLanguage(header string, loc *time.Location) Locale {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return MatchLocale(loc)
	}

	return MatchLocale(loc, tags...)
}

// LocaleFromPOSIX parses values such as "de_DE.UTF-8" from LANG or LC_ALL.
func LocaleFromPOSIX(value string, loc *time.Location) Locale {
	value, _, _ = strings.Cut(value, ".")
	value, _, _ = strings.Cut(value, "@")
	value = strings.ReplaceAll(value, "_", "-")

	if value == "" || value == "C" || value == "POSIX" {
		return MatchLocale(loc)
	}

	tag, err := language.Parse(value)
	if err != nil {
		return MatchLocale(loc)
	}

	return MatchLocale(loc, tag)
}

func (l Locale) FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	layout := l.DateLayout
	if layout == "" {
		layout = dateLayouts[0].layout
	}

	if l.Location != nil {
		t = t.In(l.Location)
	}

	return t.Format(layout)
}
