package dialogue

import (
	"strings"

	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/llm"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/session"
)

// systemPrompt is the persona/policy instruction for the generation
// service. The {user_name} placeholder is substituted on the first
// injection only; the template also goes in verbatim as a duplicate
// system message further down the list, which the generation service
// has been tuned against. Do not deduplicate.
const systemPrompt = `
Ты - эксперт по недвижимости с доступом к базе данных. Твои правила:
0. Будь дружелюбным и разговорчивым. Старайся отвечать развернута, хотя бы 2 предложениями (за исключением ответа "У меня нет данных по этому вопросу")
1. Отвечай ТОЛЬКО на основе предоставленного КОНТЕКСТА и ВСЕЙ БАЗЫ ОБЪЕКТОВ
2. Если информации нет - говори "У меня нет данных по этому вопросу"
3. Для сравнения объектов используй данные из контекста
4. Для общих вопросов используй всю базу объектов
5. Сбор контактов:
   - Предлагай только после того, как помог клиенту. Не здоровайся, когда собираешь контакт, если это не первое сообщение в чате!
   - Используй естественные фразы:
        "Если хотите, могу прислать подборку вариантов - оставьте телефон для связи"
        "Если возникнут вопросы - оставьте контакты, я свяжусь с вами"
        "Могу записать вас на просмотр - как вас зовут и на какой номер перезвонить?"
        "Если хотите, могу прислать подробную презентацию - оставьте телефон?"
   - Если имя уже известно, уточни имя и запрашивай только телефон
   - Если имя неизвестно, вежливо попроси имя и телефон
   - Никогда не настаивай
   - ПРЕДЛАГАЙ ТОЛЬКО ОДИН РАЗ за сессию
   - ЕСЛИ КОНТАКТ УЖЕ СОХРАНЕН (contact_saved=True) - НЕ ПРЕДЛАГАЙ СНОВА
   - После сохранения контакта ПЕРЕСТАНЬ УПОМИНАТЬ ЭТУ ТЕМУ
   - Переключайся на другие темы: подбор объектов, сравнение, общая информация
6. Будь дружелюбным, полезным и разговорчивым
7. Поддерживай диалог, задавай уточняющие вопросы
8. Форматирование ответов:
   - НЕ ИСПОЛЬЗУЙ markdown (**жирный**, __курсив__)
   - Пиши простым, понятным языком
   - Разбивай длинные ответы на абзацы, при этом не пиши слова "заключение", "введение" и т.д.
9. Обращайся к клиенту по имени, если оно известно: {user_name}
10. НИКОГДА не придумывай реплики за пользователя. Отвечай только от своего лица.
11. НЕ ПРЕДПОЛАГАЙ ответы пользователя. Задавай вопросы и жди реального ответа.
`

// defaultUserName labels the client in the persona prompt before they
// introduce themselves.
const defaultUserName = "клиент"

const (
	contactSavedInstruction = "ВАЖНО: Контактные данные клиента уже сохранены! Не предлагать снова."
	objectContextHeader     = "ТЕКУЩИЙ КОНТЕКСТ ОБЪЕКТА:\n"
	catalogSummaryHeader    = "ВСЯ БАЗА ОБЪЕКТОВ (кратко):\n"
	latestOnlyInstruction   = "ВАЖНО: Отвечай только на последний запрос пользователя. Не пытайся предугадывать его ответы."
	terminalInstruction     = "ЗАКЛЮЧЕНИЕ: Твой ответ должен заканчиваться на этом. Не добавляй ничего после."
	assistantTurnMarker     = "[Ассистент]: "
)

// buildMessages assembles the ordered prompt for the generation service:
// persona (personalized), the contact-saved guard when applicable, the
// persona template again, the current catalog context when non-empty, the
// cached whole-catalog summary, the history replay oldest first, the
// current user text, and two trailing steering instructions.
func buildMessages(sess *session.Session, userText, catalogSummary string) []llm.Message {
	userName := sess.UserName
	if userName == "" {
		userName = defaultUserName
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Text: strings.ReplaceAll(systemPrompt, "{user_name}", userName)},
	}

	if sess.ContactSaved {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Text: contactSavedInstruction})
	}

	messages = append(messages, llm.Message{Role: llm.RoleSystem, Text: systemPrompt})

	if sess.CatalogContext != "" {
		messages = append(messages, llm.Message{
			Role: llm.RoleSystem,
			Text: objectContextHeader + sess.CatalogContext,
		})
	}

	messages = append(messages, llm.Message{
		Role: llm.RoleSystem,
		Text: catalogSummaryHeader + catalogSummary,
	})

	for _, turn := range sess.History {
		switch turn.Role {
		case session.RoleUser:
			messages = append(messages, llm.Message{Role: llm.RoleUser, Text: turn.Text})
		case session.RoleAssistant:
			messages = append(messages, llm.Message{Role: llm.RoleAssistant, Text: assistantTurnMarker + turn.Text})
		}
	}

	messages = append(messages,
		llm.Message{Role: llm.RoleUser, Text: userText},
		llm.Message{Role: llm.RoleSystem, Text: latestOnlyInstruction},
		llm.Message{Role: llm.RoleSystem, Text: terminalInstruction},
	)

	return messages
}
