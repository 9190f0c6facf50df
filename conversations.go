package main

import (
	"sort"
)

// ParticipantSummary is the public slice of a user shown next to messages.
type ParticipantSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	UserType     Role   `json:"user_type,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
	Avatar       string `json:"avatar,omitempty"`
}

func summarize(u User) ParticipantSummary {
	s := ParticipantSummary{
		ID:       u.ID,
		Name:     u.Name,
		UserType: u.Role,
		Avatar:   u.Profile.Avatar,
	}
	if u.Vendor != nil {
		s.BusinessName = u.Vendor.BusinessName
	}
	return s
}

// Conversation is one row of the inbox: the latest message exchanged with a
// counterparty and how many of their messages the caller has not read.
type Conversation struct {
	Participant ParticipantSummary `json:"participant"`
	LastMessage Message            `json:"last_message"`
	UnreadCount int                `json:"unread_count"`
}

// BuildConversations groups msgs by the participant who is not callerID.
// users resolves participant summaries; a counterparty missing from it still
// gets a row carrying only its id. Rows are ordered newest first.
func BuildConversations(callerID string, msgs []Message, users map[string]User) []Conversation {
	rows := make(map[string]*Conversation)
	for _, m := range msgs {
		if m.SenderID != callerID && m.RecipientID != callerID {
			continue
		}
		other := m.Counterparty(callerID)
		row, ok := rows[other]
		if !ok {
			row = &Conversation{LastMessage: m}
			if u, found := users[other]; found {
				row.Participant = summarize(u)
			} else {
				row.Participant = ParticipantSummary{ID: other}
			}
			rows[other] = row
		} else if m.CreatedAt.After(row.LastMessage.CreatedAt) {
			row.LastMessage = m
		}
		if m.RecipientID == callerID && !m.IsRead {
			row.UnreadCount++
		}
	}

	out := make([]Conversation, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessage.CreatedAt.After(out[j].LastMessage.CreatedAt)
	})
	return out
}

// counterparties lists the distinct other participants of msgs.
func counterparties(callerID string, msgs []Message) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, m := range msgs {
		other := m.Counterparty(callerID)
		if !seen[other] {
			seen[other] = true
			ids = append(ids, other)
		}
	}
	return ids
}
