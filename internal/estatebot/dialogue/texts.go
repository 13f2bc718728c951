package dialogue

// Menu tells the transport which reply keyboard to attach to a reply.
// Transports without keyboards (HTTP, websocket) ignore it.
type Menu int

const (
	MenuNone Menu = iota
	MenuStart
	MenuMain
	MenuPostComparison
)

// Reply is a single outgoing message produced by the engine.
type Reply struct {
	Text string
	Menu Menu
}

// Button labels of the main reply keyboard. The engine matches incoming
// text against them verbatim.
const (
	ButtonShowAll      = "Показать все ЖК"
	ButtonCompare      = "Сравнить ЖК"
	ButtonLeaveContact = "Оставить контакты"
	ButtonHelp         = "Помощь"
	ButtonStartChat    = "Начать общение"
	ButtonMainMenu     = "Главное меню"
	ButtonMoreDetails  = "Подробнее о ЖК"
	ButtonBookViewing  = "Записаться на просмотр"
)

const (
	WelcomeText = "👋 Здравствуйте! Я помощник по жилым комплексам от застройщика СтройИнвест.\n\n" +
		"Я могу рассказать о наших объектах, сравнить ЖК, подобрать вариант под ваши пожелания " +
		"и записать вас на просмотр.\n\nВыберите действие или просто напишите свой вопрос."

	HelpText = "ℹ️ Я умею:\n" +
		"• Показывать все доступные ЖК\n" +
		"• Сравнивать жилые комплексы\n" +
		"• Отвечать на вопросы о наших объектах\n" +
		"• Сохранять ваши контакты для связи с менеджером\n\n" +
		"Команды:\n" +
		"/start - начать сначала\n" +
		"/menu - главное меню\n" +
		"/reset - сбросить диалог\n" +
		"/help - эта справка"

	mainMenuTitle = "🏠 Главное меню:"

	askNameText = "👋 Приятно познакомиться! Как я могу к вам обращаться?"

	confirmNameFormat = "Понял вас как '%s'. Это ваше полное имя? Можно просто имя, чтобы мне было удобнее обращаться 😊"

	greetNameFormat = "Приятно познакомиться, %s! 😊\n" +
		"Чем могу помочь? Можете спросить о наших жилых комплексах, условиях покупки или попросить подобрать вариант."

	allObjectsHeader = "🏠 Доступные жилые комплексы:\n"

	comparePromptText = "Пожалуйста, введите названия ЖК для сравнения через запятую\n" +
		"Например: ЖК Солнечный, ЖК Луговой"

	compareEmptyText = "Вы не указали названия ЖК. Пожалуйста, попробуйте снова."

	compareFollowUpText = "Хотите узнать подробнее о каком-то из ЖК? Или может быть записаться на просмотр?"

	contactPromptText = "Пожалуйста, введите ваше имя и номер телефона в формате: Иван Иванов +79161234567"

	contactRetryText = "Не удалось распознать контактные данные. Пожалуйста, введите имя и телефон в формате: \"Иван Иванов +79161234567\""

	contactSavedFormat = "Спасибо, %s! Мы свяжемся с вами в ближайшее время. 😊"

	contactSaveErrorText = "Произошла ошибка при сохранении ваших данных. Пожалуйста, попробуйте еще раз."

	internalErrorText = "Произошла ошибка. Попробуйте позже."
)

// resetPhrases return the dialogue to the main menu from any mode.
// Matched case-insensitively against the whole message.
var resetPhrases = []string{"/start", "/menu", "главное меню", "начать сначала"}

// historyPurgeKeywords drop contact-talk turns from history once the
// lead is saved, so replayed context stops steering the conversation
// back to contact collection.
var historyPurgeKeywords = []string{"контакты", "телефон", "перезвонить"}
