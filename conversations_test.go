package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConversations(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	msg := func(id, from, to string, minutes int, read bool) Message {
		return Message{ID: id, SenderID: from, RecipientID: to, Content: id, IsRead: read,
			CreatedAt: base.Add(time.Duration(minutes) * time.Minute)}
	}

	t.Run("Testcase #1: one row per counterparty, newest first", func(t *testing.T) {
		msgs := []Message{
			msg("m1", "u1", "u2", 0, true),
			msg("m2", "u2", "u1", 5, false),
			msg("m3", "u2", "u1", 6, false),
			msg("m4", "u3", "u1", 1, true),
			msg("m5", "u1", "u4", 10, false),
		}
		users := map[string]User{
			"u2": {ID: "u2", Name: "Sara", Role: RoleVendor, Vendor: &VendorProfile{BusinessName: "Sara Catering"}},
			"u3": {ID: "u3", Name: "Omar", Role: RoleOrganizer, Profile: Profile{Avatar: "/uploads/a.png"}},
		}

		rows := BuildConversations("u1", msgs, users)
		require.Len(t, rows, 3)

		assert.Equal(t, "u4", rows[0].Participant.ID)
		assert.Empty(t, rows[0].Participant.Name)
		assert.Equal(t, 0, rows[0].UnreadCount)

		assert.Equal(t, "u2", rows[1].Participant.ID)
		assert.Equal(t, "Sara Catering", rows[1].Participant.BusinessName)
		assert.Equal(t, "m3", rows[1].LastMessage.ID)
		assert.Equal(t, 2, rows[1].UnreadCount)

		assert.Equal(t, "u3", rows[2].Participant.ID)
		assert.Equal(t, "/uploads/a.png", rows[2].Participant.Avatar)
		assert.Equal(t, 0, rows[2].UnreadCount)
	})

	t.Run("Testcase #2: unread counts only messages sent to the caller", func(t *testing.T) {
		msgs := []Message{
			msg("m1", "u1", "u2", 0, false),
			msg("m2", "u1", "u2", 1, false),
		}
		rows := BuildConversations("u1", msgs, nil)
		require.Len(t, rows, 1)
		assert.Equal(t, 0, rows[0].UnreadCount)
		assert.Equal(t, "m2", rows[0].LastMessage.ID)
	})

	t.Run("Testcase #3: no messages", func(t *testing.T) {
		rows := BuildConversations("u1", nil, nil)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})
}

func TestCounterparties(t *testing.T) {
	msgs := []Message{
		{SenderID: "a", RecipientID: "b"},
		{SenderID: "b", RecipientID: "a"},
		{SenderID: "c", RecipientID: "a"},
	}
	assert.Equal(t, []string{"b", "c"}, counterparties("a", msgs))
}
