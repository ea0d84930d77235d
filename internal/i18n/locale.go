// Package i18n selects the display language and translates the client's messages.
package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/liyang960414/erp/internal/storage"
	"github.com/liyang960414/erp/pkg/sdk"
)

// Locale is a supported UI language tag.
type Locale string

const (
	ZhCN Locale = "zh-CN"
	Vi   Locale = "vi"
	En   Locale = "en"
	ID   Locale = "id"

	// Default is used when nothing valid is persisted.
	Default = ZhCN
)

var labels = map[Locale]string{
	ZhCN: "简体中文",
	Vi:   "Tiếng Việt",
	En:   "English",
	ID:   "Bahasa Indonesia",
}

// Locales lists the supported locales in menu order.
func Locales() []Locale {
	return []Locale{ZhCN, Vi, En, ID}
}

// Label is the locale's name in its own language.
func (l Locale) Label() string {
	return labels[l]
}

// Tag returns the BCP 47 tag.
func (l Locale) Tag() language.Tag {
	return language.Make(string(l))
}

// Valid reports whether l is supported.
func (l Locale) Valid() bool {
	_, ok := labels[l]
	return ok
}

// ParseLocale validates a locale string.
func ParseLocale(s string) (Locale, error) {
	l := Locale(s)
	if !l.Valid() {
		return "", fmt.Errorf("unsupported locale %q (supported: zh-CN, vi, en, id)", s)
	}
	return l, nil
}

var loadCatalog = sync.OnceValues(newCatalog)

// Translator renders messages in one locale.
type Translator struct {
	locale  Locale
	printer *message.Printer
}

// NewTranslator returns a Translator for l; unsupported locales use Default.
func NewTranslator(l Locale) *Translator {
	if !l.Valid() {
		l = Default
	}
	cat, err := loadCatalog()
	if err != nil {
		// The catalog is static; a build failure is a programming error.
		panic(fmt.Sprintf("i18n: build catalog: %v", err))
	}
	return &Translator{
		locale:  l,
		printer: message.NewPrinter(l.Tag(), message.Catalog(cat)),
	}
}

// Locale returns the translator's locale.
func (t *Translator) Locale() Locale {
	return t.locale
}

// T translates key. Unknown keys render as the key itself.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Text implements sdk.Messages.
func (t *Translator) Text(key sdk.MessageKey, args ...any) string {
	return t.T(string(key), args...)
}

// Store holds the selected locale and persists changes.
type Store struct {
	kv     storage.Store
	logger *slog.Logger

	mu         sync.RWMutex
	translator *Translator
}

// NewStore restores the persisted locale, falling back to Default.
// A non-empty override (from flags or environment) wins without being persisted.
func NewStore(ctx context.Context, kv storage.Store, override string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{kv: kv, logger: logger}

	locale := Default
	if saved, ok, err := kv.Get(ctx, storage.KeyLocale); err != nil {
		logger.Warn("failed to read locale", "error", err)
	} else if ok && Locale(saved).Valid() {
		locale = Locale(saved)
	}
	if override != "" {
		if l, err := ParseLocale(override); err == nil {
			locale = l
		} else {
			logger.Warn("ignoring locale override", "error", err)
		}
	}

	s.translator = NewTranslator(locale)
	return s
}

// Locale returns the current locale.
func (s *Store) Locale() Locale {
	return s.Translator().Locale()
}

// Translator returns the translator for the current locale.
func (s *Store) Translator() *Translator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.translator
}

// SetLocale switches and persists the locale.
func (s *Store) SetLocale(ctx context.Context, l Locale) error {
	if !l.Valid() {
		return fmt.Errorf("unsupported locale %q", l)
	}
	s.mu.Lock()
	s.translator = NewTranslator(l)
	s.mu.Unlock()

	if err := s.kv.Set(ctx, storage.KeyLocale, string(l)); err != nil {
		return fmt.Errorf("persist locale: %w", err)
	}
	return nil
}

// T translates key in the current locale.
func (s *Store) T(key string, args ...any) string {
	return s.Translator().T(key, args...)
}

// Text implements sdk.Messages, following locale switches.
func (s *Store) Text(key sdk.MessageKey, args ...any) string {
	return s.Translator().Text(key, args...)
}
