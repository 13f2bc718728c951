package catalog

import (
	"fmt"
	"strings"
)

// Compare renders a user-facing comparison of explicitly named developments,
// used on the menu-driven comparison path. Names must match catalog entries
// exactly after trimming; misses are reported inline rather than dropped.
func (c *Catalog) Compare(names []string) string {
	if len(names) == 0 {
		return "Пожалуйста, укажите названия ЖК для сравнения."
	}

	var b strings.Builder
	b.WriteString("🔍 Сравнение ЖК:\n\n")
	foundAny := false

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		entry, ok := c.entries[name]
		if !ok {
			fmt.Fprintf(&b, "⚠️ ЖК '%s' не найден в базе данных\n\n", name)
			continue
		}
		foundAny = true
		fmt.Fprintf(&b, "🏢 %s:\n", name)
		fmt.Fprintf(&b, "  • Описание: %s...\n", truncateRunes(entry.Description, 100))
		fmt.Fprintf(&b, "  • Этажность: %s\n", entry.Floors)
		fmt.Fprintf(&b, "  • Срок сдачи: %s\n", entry.DeliveryDate)

		if len(entry.Nearby) > 0 {
			nearby := make([]string, 0, 3)
			for _, obj := range entry.Nearby {
				nearby = append(nearby, obj.Name)
				if len(nearby) == 3 {
					break
				}
			}
			fmt.Fprintf(&b, "  • Ближайшие объекты: %s\n", strings.Join(nearby, ", "))
		}
		b.WriteString("\n")
	}

	if !foundAny {
		return "Ни один из указанных ЖК не найден. Пожалуйста, проверьте названия."
	}
	return b.String()
}
