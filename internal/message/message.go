package message

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Catalog resolves message keys to localized text. Keys missing from the
// catalog are printed as-is, formatted with their args.
type Catalog struct {
	cat       *catalog.Builder
	matcher   language.Matcher
	supported []language.Tag
	fallback  language.Tag
}

type contextKey struct{}

func New(defaultLocale string) *Catalog {
	fallback := language.English
	if tag, err := language.Parse(defaultLocale); err == nil {
		fallback = tag
	}

	supported := []language.Tag{language.English, language.Vietnamese}
	// Fallback first so the matcher prefers it on ties.
	if fallback == language.Vietnamese {
		supported = []language.Tag{language.Vietnamese, language.English}
	}

	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range translations {
		for key, text := range entries {
			_ = b.SetString(tag, key, text)
		}
	}

	return &Catalog{
		cat:       b,
		matcher:   language.NewMatcher(supported),
		supported: supported,
		fallback:  supported[0],
	}
}

// Match picks the best supported language for an Accept-Language header value.
func (c *Catalog) Match(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return c.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.fallback
	}
	return c.supported[idx]
}

func (c *Catalog) Get(ctx context.Context, key string, args ...any) string {
	p := message.NewPrinter(c.Language(ctx), message.Catalog(c.cat))
	return p.Sprintf(key, args...)
}

func (c *Catalog) Language(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(contextKey{}).(language.Tag); ok {
		return tag
	}
	return c.fallback
}

func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, contextKey{}, tag)
}
