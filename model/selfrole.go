package model

import "database/sql"

// SelectionMode controls how the roles of one role message interact:
// radio messages allow at most one of their roles per member, multiple
// messages treat every role as an independent toggle.
type SelectionMode string

const (
	SelectionModeRadio    SelectionMode = "radio"
	SelectionModeMultiple SelectionMode = "multiple"
)

// Valid reports whether m is one of the known selection modes.
func (m SelectionMode) Valid() bool {
	return m == SelectionModeRadio || m == SelectionModeMultiple
}

// RoleMessage is one deployed self-role message. MessageID stays NULL
// until the Discord message has been sent; once set it is unique across
// all role messages, which is what lets a button click resolve back to
// its configuration.
type RoleMessage struct {
	ID            int64          `db:"id"`
	GuildID       string         `db:"guild_id"`
	ChannelID     string         `db:"channel_id"`
	MessageID     sql.NullString `db:"message_id"`
	Title         string         `db:"title"`
	Body          string         `db:"body"`
	SelectionMode SelectionMode  `db:"selection_mode"`
	CreatedAt     int64          `db:"created_at"`
	UpdatedAt     int64          `db:"updated_at"`
}

// RoleMessageRole is one button on a role message. Role IDs repeat
// across messages and guilds; they are only unique within one message.
type RoleMessageRole struct {
	RoleMessageID int64  `db:"role_message_id"`
	RoleID        string `db:"role_id"`
	Emoji         string `db:"emoji"`
}

// RoleMessageSummary is the list view of a role message.
type RoleMessageSummary struct {
	RoleMessage
	RoleCount int `db:"role_count"`
}
