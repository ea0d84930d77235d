package i18n_test

import (
	"context"
	"testing"

	"github.com/liyang960414/erp/internal/i18n"
	"github.com/liyang960414/erp/internal/storage"
	"github.com/liyang960414/erp/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslator(t *testing.T) {
	zh := i18n.NewTranslator(i18n.ZhCN)
	en := i18n.NewTranslator(i18n.En)

	assert.Equal(t, "没有权限访问，请联系管理员", zh.Text(sdk.MsgNoPermission))
	assert.Equal(t, "You do not have permission to access this resource, please contact an administrator", en.Text(sdk.MsgNoPermission))
	assert.Equal(t, "请求失败 (409)", zh.Text(sdk.MsgStatusFailed, 409))
	assert.Equal(t, "Home", en.T(i18n.KeyMenuHome))
	assert.Equal(t, "unknown.key", en.T("unknown.key"))
}

func TestTranslator_FallsBackToChinese(t *testing.T) {
	vi := i18n.NewTranslator(i18n.Vi)
	assert.Equal(t, "Trang chủ", vi.T(i18n.KeyMenuHome))
	// Not translated into Vietnamese.
	assert.Equal(t, "商品管理", vi.T(i18n.KeyMenuProducts))
}

func TestNewTranslator_UnsupportedUsesDefault(t *testing.T) {
	tr := i18n.NewTranslator("fr")
	assert.Equal(t, i18n.Default, tr.Locale())
}

func TestParseLocale(t *testing.T) {
	for _, l := range i18n.Locales() {
		got, err := i18n.ParseLocale(string(l))
		require.NoError(t, err)
		assert.Equal(t, l, got)
		assert.NotEmpty(t, l.Label())
	}
	_, err := i18n.ParseLocale("de")
	assert.Error(t, err)
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to zh-CN", func(t *testing.T) {
		s := i18n.NewStore(ctx, storage.NewMemoryStore(), "", nil)
		assert.Equal(t, i18n.ZhCN, s.Locale())
	})

	t.Run("restores persisted locale", func(t *testing.T) {
		kv := storage.NewMemoryStore()
		require.NoError(t, kv.Set(ctx, storage.KeyLocale, "id"))
		s := i18n.NewStore(ctx, kv, "", nil)
		assert.Equal(t, i18n.ID, s.Locale())
	})

	t.Run("ignores invalid persisted locale", func(t *testing.T) {
		kv := storage.NewMemoryStore()
		require.NoError(t, kv.Set(ctx, storage.KeyLocale, "klingon"))
		s := i18n.NewStore(ctx, kv, "", nil)
		assert.Equal(t, i18n.ZhCN, s.Locale())
	})

	t.Run("override wins without persisting", func(t *testing.T) {
		kv := storage.NewMemoryStore()
		require.NoError(t, kv.Set(ctx, storage.KeyLocale, "vi"))
		s := i18n.NewStore(ctx, kv, "en", nil)
		assert.Equal(t, i18n.En, s.Locale())

		saved, _, err := kv.Get(ctx, storage.KeyLocale)
		require.NoError(t, err)
		assert.Equal(t, "vi", saved)
	})

	t.Run("set locale persists and switches messages", func(t *testing.T) {
		kv := storage.NewMemoryStore()
		s := i18n.NewStore(ctx, kv, "", nil)
		var messages sdk.Messages = s

		require.NoError(t, s.SetLocale(ctx, i18n.En))
		assert.Equal(t, "Server error", messages.Text(sdk.MsgServerError))

		saved, ok, err := kv.Get(ctx, storage.KeyLocale)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "en", saved)

		assert.Error(t, s.SetLocale(ctx, "xx"))
		assert.Equal(t, i18n.En, s.Locale())
	})
}
