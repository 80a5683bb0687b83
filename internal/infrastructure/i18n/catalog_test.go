package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"

	"plant-bot/internal/domain/entity"
)

func TestNewDefault_AllLocalesComplete(t *testing.T) {
	c, err := NewDefault(entity.LocaleZhTW)
	require.NoError(t, err)

	require.Equal(t, "未能辨識出植物", c.Text(entity.LocaleZhTW, KeyNotIdentified))
	require.Equal(t, "No plant identified", c.Text(entity.LocaleEN, KeyNotIdentified))
	require.Equal(t, "記錄 3", c.Text(entity.LocaleZhTW, KeyHistoryRecord, 3))
	require.Equal(t, "Scientific name: Adenium_obesum (confidence: 0.91)",
		c.Text(entity.LocaleEN, KeyScientificName, "Adenium_obesum", float32(0.91)))
}

func TestValidate_ReportsMissingKeys(t *testing.T) {
	c, err := Parse([]byte("zh-TW:\n  page_title: t\nen:\n  page_title: t\n"), entity.LocaleZhTW)
	require.NoError(t, err)

	err = c.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "not_identified")
}

func TestValidate_ReportsMissingLocale(t *testing.T) {
	c, err := Parse([]byte("zh-TW:\n  page_title: t\n"), entity.LocaleZhTW)
	require.NoError(t, err)
	require.ErrorContains(t, c.Validate(), "en: locale missing")
}

func TestParse_RejectsUnknownLocale(t *testing.T) {
	_, err := Parse([]byte("fr:\n  page_title: t\n"), entity.LocaleZhTW)
	require.Error(t, err)
}

func TestText_Fallbacks(t *testing.T) {
	c, err := Parse([]byte("zh-TW:\n  only_zh: 中\nen:\n  page_title: T\n"), entity.LocaleZhTW)
	require.NoError(t, err)

	require.Equal(t, "中", c.Text(entity.LocaleEN, "only_zh"))
	require.Equal(t, "nope", c.Text(entity.LocaleEN, "nope"))
}

func TestTable_MergesFallback(t *testing.T) {
	c, err := Parse([]byte("zh-TW:\n  a: 甲\n  b: 乙\nen:\n  a: A\n"), entity.LocaleZhTW)
	require.NoError(t, err)

	require.Equal(t, map[string]string{"a": "A", "b": "乙"}, c.Table(entity.LocaleEN))
}
