package catalog

import (
	"fmt"
	"strings"
)

// Summary renders one compact block per development for the whole catalog.
// The catalog never changes after load, so the result is computed once and
// cached for the process lifetime. Safe for concurrent callers.
func (c *Catalog) Summary() string {
	c.summaryOnce.Do(func() {
		var b strings.Builder
		b.WriteString("===== КРАТКИЙ ОБЗОР ВСЕХ ОБЪЕКТОВ =====\n")
		for _, name := range c.names {
			entry := c.entries[name]
			fmt.Fprintf(&b, "• %s:\n", name)
			fmt.Fprintf(&b, "  - Описание: %s...\n", truncateRunes(entry.Description, 70))
			fmt.Fprintf(&b, "  - Срок сдачи: %s\n", entry.DeliveryDate)
			if len(entry.Features) > 0 {
				fmt.Fprintf(&b, "  - Особенности: %s\n", strings.Join(firstN(entry.Features, 3), ", "))
			}
			b.WriteString("\n")
		}
		c.summary = b.String()
	})
	return c.summary
}
