package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	c := testCatalog(t)

	t.Run("single entry renders the full block", func(t *testing.T) {
		entry, _ := c.Get("ЖК Солнечный")
		out := c.Format(Result{Kind: KindSingle, Entry: entry})

		assert.True(t, strings.HasPrefix(out, "===== ЖК Солнечный =====\n"))
		assert.Contains(t, out, "Описание: Современный комплекс у метро\n")
		assert.Contains(t, out, "Этажность: 17-24 этажа\n")
		assert.Contains(t, out, "Срок сдачи: 4 квартал 2026\n")
		assert.Contains(t, out, "Ближайшие объекты:\n")
		assert.Contains(t, out, "- школа №14 (школа, 450 м)\n")
		assert.Contains(t, out, "- ТЦ Южный (торговый центр, 1.2 км)\n")
	})

	t.Run("all objects renders a dash list", func(t *testing.T) {
		out := c.Format(Result{Kind: KindAllObjects, Names: c.Names()})
		assert.Equal(t, "===== ВСЕ ДОСТУПНЫЕ ЖК =====\n- ЖК Солнечный\n- ЖК Луговой\n\n", out)
	})

	t.Run("comparison block caps nearby objects at two", func(t *testing.T) {
		out := c.Format(Result{Kind: KindCompare, Names: []string{"ЖК Солнечный", "ЖК Луговой"}})

		assert.True(t, strings.HasPrefix(out, "===== СРАВНЕНИЕ ОБЪЕКТОВ =====\n"))
		assert.Contains(t, out, "• ЖК Солнечный:\n")
		assert.Contains(t, out, "  Этажность: 17-24 этажа\n")
		assert.Contains(t, out, "  Рядом: школа №14, ТЦ Южный\n")
		assert.Contains(t, out, "• ЖК Луговой:\n")
		assert.Contains(t, out, "  Рядом: лесопарк Луговой\n")
	})

	t.Run("auto search caps features at three", func(t *testing.T) {
		out := c.Format(Result{Kind: KindAutoSearch, Names: []string{"ЖК Солнечный"}})

		assert.True(t, strings.HasPrefix(out, "===== НАЙДЕННЫЕ ОБЪЕКТЫ =====\n"))
		assert.Contains(t, out, "  Особенности: закрытый двор, паркинг, детский сад\n")
		assert.NotContains(t, out, "отделка")
	})

	t.Run("unknown name in a multi variant renders empty", func(t *testing.T) {
		assert.Equal(t, "", c.Format(Result{Kind: KindCompare, Names: []string{"ЖК Призрачный"}}))
		assert.Equal(t, "", c.Format(Result{Kind: KindAutoSearch, Names: []string{"ЖК Призрачный"}}))
	})

	t.Run("single without entry renders empty", func(t *testing.T) {
		assert.Equal(t, "", c.Format(Result{Kind: KindSingle}))
	})

	t.Run("not found renders empty", func(t *testing.T) {
		assert.Equal(t, "", c.Format(Result{Kind: KindNotFound}))
	})
}

func TestTruncateRunes(t *testing.T) {
	long := strings.Repeat("я", 120)
	got := truncateRunes(long, 100)
	assert.Equal(t, 100, len([]rune(got)))

	short := "короткий текст"
	assert.Equal(t, short, truncateRunes(short, 100))
}

func TestSummary(t *testing.T) {
	c := testCatalog(t)
	out := c.Summary()

	assert.True(t, strings.HasPrefix(out, "===== КРАТКИЙ ОБЗОР ВСЕХ ОБЪЕКТОВ =====\n"))
	assert.Contains(t, out, "• ЖК Солнечный:\n")
	assert.Contains(t, out, "  - Описание: Современный комплекс у метро...\n")
	assert.Contains(t, out, "  - Срок сдачи: 2 квартал 2027\n")

	// Cached: repeated calls return the identical string.
	assert.Equal(t, out, c.Summary())
}

func TestCompare(t *testing.T) {
	c := testCatalog(t)

	t.Run("renders each requested entry", func(t *testing.T) {
		out := c.Compare([]string{"ЖК Солнечный", "ЖК Луговой"})

		assert.True(t, strings.HasPrefix(out, "🔍 Сравнение ЖК:\n\n"))
		assert.Contains(t, out, "🏢 ЖК Солнечный:\n")
		assert.Contains(t, out, "  • Этажность: 17-24 этажа\n")
		assert.Contains(t, out, "  • Ближайшие объекты: школа №14, ТЦ Южный\n")
		assert.Contains(t, out, "🏢 ЖК Луговой:\n")
	})

	t.Run("reports misses inline", func(t *testing.T) {
		out := c.Compare([]string{"ЖК Солнечный", "ЖК Призрачный"})
		assert.Contains(t, out, "🏢 ЖК Солнечный:\n")
		assert.Contains(t, out, "⚠️ ЖК 'ЖК Призрачный' не найден в базе данных\n")
	})

	t.Run("trims names before matching", func(t *testing.T) {
		out := c.Compare([]string{"  ЖК Луговой  "})
		assert.Contains(t, out, "🏢 ЖК Луговой:\n")
	})

	t.Run("no hits at all", func(t *testing.T) {
		out := c.Compare([]string{"ЖК Призрачный"})
		assert.Equal(t, "Ни один из указанных ЖК не найден. Пожалуйста, проверьте названия.", out)
	})

	t.Run("empty request", func(t *testing.T) {
		out := c.Compare(nil)
		assert.Equal(t, "Пожалуйста, укажите названия ЖК для сравнения.", out)
	})
}
