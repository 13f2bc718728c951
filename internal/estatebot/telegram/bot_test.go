package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/dialogue"
)

func rowLabels(row []tgbotapi.KeyboardButton) []string {
	labels := make([]string, 0, len(row))
	for _, btn := range row {
		labels = append(labels, btn.Text)
	}
	return labels
}

func TestStartKeyboard(t *testing.T) {
	kb := startKeyboard()

	require.Len(t, kb.Keyboard, 1)
	assert.Equal(t, []string{dialogue.ButtonStartChat}, rowLabels(kb.Keyboard[0]))
	assert.True(t, kb.OneTimeKeyboard)
	assert.True(t, kb.ResizeKeyboard)
}

func TestMainKeyboard(t *testing.T) {
	kb := mainKeyboard()

	require.Len(t, kb.Keyboard, 2)
	assert.Equal(t, []string{dialogue.ButtonShowAll, dialogue.ButtonCompare}, rowLabels(kb.Keyboard[0]))
	assert.Equal(t, []string{dialogue.ButtonHelp, dialogue.ButtonLeaveContact}, rowLabels(kb.Keyboard[1]))
	assert.False(t, kb.OneTimeKeyboard)
}

func TestPostComparisonKeyboard(t *testing.T) {
	kb := postComparisonKeyboard()

	require.Len(t, kb.Keyboard, 2)
	assert.Equal(t, []string{dialogue.ButtonMoreDetails, dialogue.ButtonBookViewing}, rowLabels(kb.Keyboard[0]))
	assert.Equal(t, []string{dialogue.ButtonMainMenu}, rowLabels(kb.Keyboard[1]))
}
