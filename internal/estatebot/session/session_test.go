package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendTurn(t *testing.T) {
	t.Run("keeps at most the history limit, oldest evicted", func(t *testing.T) {
		s := New("u1")
		for i := 0; i < HistoryLimit+5; i++ {
			s.AppendTurn(RoleUser, fmt.Sprintf("msg-%d", i))
		}
		require.Len(t, s.History, HistoryLimit)
		assert.Equal(t, "msg-5", s.History[0].Text)
		assert.Equal(t, fmt.Sprintf("msg-%d", HistoryLimit+4), s.History[HistoryLimit-1].Text)
	})
}

func TestPurgeContactTurns(t *testing.T) {
	s := New("u1")
	s.AppendTurn(RoleAssistant, "Могу рассказать про ЖК Солнечный")
	s.AppendTurn(RoleAssistant, "Оставьте Телефон для связи")
	s.AppendTurn(RoleUser, "мои контакты: Иван")
	s.AppendTurn(RoleUser, "что по срокам сдачи?")

	s.PurgeContactTurns([]string{"контакты", "телефон", "перезвонить"})

	require.Len(t, s.History, 2)
	assert.Equal(t, "Могу рассказать про ЖК Солнечный", s.History[0].Text)
	assert.Equal(t, "что по срокам сдачи?", s.History[1].Text)
}

func TestLastTexts(t *testing.T) {
	s := New("u1")
	s.AppendTurn(RoleUser, "a")
	s.AppendTurn(RoleAssistant, "b")
	s.AppendTurn(RoleUser, "c")

	assert.Equal(t, []string{"b", "c"}, s.LastTexts(2))
	assert.Equal(t, []string{"a", "b", "c"}, s.LastTexts(10))
}

func TestClearSubDialogues(t *testing.T) {
	s := New("u1")
	s.Mode = ModeCollectingContacts
	s.TempName = "Временное Имя"
	s.UserName = "Иван"
	s.ContactSaved = true

	s.ClearSubDialogues()

	assert.Equal(t, ModeIdle, s.Mode)
	assert.Empty(t, s.TempName)
	assert.Equal(t, "Иван", s.UserName)
	assert.True(t, s.ContactSaved)
}

func TestClone(t *testing.T) {
	s := New("u1")
	s.AppendTurn(RoleUser, "original")

	cp := s.Clone()
	cp.AppendTurn(RoleUser, "copied")
	cp.UserName = "Копия"

	assert.Len(t, s.History, 1)
	assert.Empty(t, s.UserName)
	assert.Len(t, cp.History, 2)
}

func TestInmemStore(t *testing.T) {
	ctx := context.Background()
	store := NewInmem()

	t.Run("get creates a fresh session", func(t *testing.T) {
		s, err := store.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", s.UserID)
		assert.Equal(t, ModeIdle, s.Mode)
	})

	t.Run("save then get round-trips", func(t *testing.T) {
		s, err := store.Get(ctx, "u2")
		require.NoError(t, err)
		s.UserName = "Анна"
		require.NoError(t, store.Save(ctx, s))

		got, err := store.Get(ctx, "u2")
		require.NoError(t, err)
		assert.Equal(t, "Анна", got.UserName)
	})

	t.Run("reset wipes the session", func(t *testing.T) {
		s, err := store.Get(ctx, "u3")
		require.NoError(t, err)
		s.ContactSaved = true
		require.NoError(t, store.Save(ctx, s))

		require.NoError(t, store.Reset(ctx, "u3"))

		got, err := store.Get(ctx, "u3")
		require.NoError(t, err)
		assert.False(t, got.ContactSaved)
	})
}
