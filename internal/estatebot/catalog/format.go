package catalog

import (
	"fmt"
	"strings"
)

// Format renders a lookup result as a text block for the generation prompt.
// Total: an inconsistent result renders as an empty string and the caller
// proceeds without catalog context.
func (c *Catalog) Format(res Result) string {
	switch res.Kind {
	case KindAutoSearch:
		return c.formatAutoSearch(res.Names)
	case KindAllObjects:
		return c.formatAllObjects(res.Names)
	case KindCompare:
		return c.formatCompare(res.Names)
	case KindSingle:
		if res.Entry == nil {
			return ""
		}
		return c.formatSingle(res.Entry)
	default:
		return ""
	}
}

func (c *Catalog) formatAutoSearch(names []string) string {
	var b strings.Builder
	b.WriteString("===== НАЙДЕННЫЕ ОБЪЕКТЫ =====\n")
	for _, name := range names {
		entry, ok := c.entries[name]
		if !ok {
			return ""
		}
		fmt.Fprintf(&b, "• %s:\n", name)
		fmt.Fprintf(&b, "  Описание: %s...\n", truncateRunes(entry.Description, 100))
		fmt.Fprintf(&b, "  Срок сдачи: %s\n", entry.DeliveryDate)
		if len(entry.Features) > 0 {
			fmt.Fprintf(&b, "  Особенности: %s\n", strings.Join(firstN(entry.Features, 3), ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (c *Catalog) formatAllObjects(names []string) string {
	var b strings.Builder
	b.WriteString("===== ВСЕ ДОСТУПНЫЕ ЖК =====\n")
	for _, name := range names {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	b.WriteString("\n")
	return b.String()
}

func (c *Catalog) formatCompare(names []string) string {
	var b strings.Builder
	b.WriteString("===== СРАВНЕНИЕ ОБЪЕКТОВ =====\n")
	for _, name := range names {
		entry, ok := c.entries[name]
		if !ok {
			return ""
		}
		fmt.Fprintf(&b, "• %s:\n", name)
		fmt.Fprintf(&b, "  Описание: %s...\n", truncateRunes(entry.Description, 100))
		fmt.Fprintf(&b, "  Этажность: %s\n", entry.Floors)
		fmt.Fprintf(&b, "  Срок сдачи: %s\n", entry.DeliveryDate)
		if len(entry.Nearby) > 0 {
			nearby := make([]string, 0, 2)
			for _, obj := range entry.Nearby {
				nearby = append(nearby, obj.Name)
				if len(nearby) == 2 {
					break
				}
			}
			fmt.Fprintf(&b, "  Рядом: %s\n", strings.Join(nearby, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (c *Catalog) formatSingle(entry *Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "===== %s =====\n", entry.Name)
	fmt.Fprintf(&b, "Описание: %s\n", entry.Description)
	fmt.Fprintf(&b, "Этажность: %s\n", entry.Floors)
	fmt.Fprintf(&b, "Срок сдачи: %s\n\n", entry.DeliveryDate)
	b.WriteString("Ближайшие объекты:\n")
	for _, obj := range entry.Nearby {
		fmt.Fprintf(&b, "- %s (%s, %s)\n", obj.Name, obj.Kind, obj.Distance)
	}
	return b.String()
}

// truncateRunes cuts s to at most n characters. Cuts mid-word; the
// ellipsis appended by the callers is cosmetic.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
