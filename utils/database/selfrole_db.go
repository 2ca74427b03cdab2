package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"selfrole-bot/model"

	"github.com/jmoiron/sqlx"
)

// ErrMessageIDConflict is returned when a Discord message ID is already
// attached to a different role message. The deploy path treats this as
// fatal for the attempt and rolls the new configuration back.
var ErrMessageIDConflict = errors.New("message id already attached to another role message")

// CreateRoleMessage inserts a new role message with no Discord message
// attached yet.
func CreateRoleMessage(db *sqlx.DB, guildID, channelID, title, body string, mode model.SelectionMode) (*model.RoleMessage, error) {
	now := time.Now().Unix()
	res, err := db.Exec(
		`INSERT INTO role_messages (guild_id, channel_id, title, body, selection_mode, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		guildID, channelID, title, body, string(mode), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert role message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.RoleMessage{
		ID:            id,
		GuildID:       guildID,
		ChannelID:     channelID,
		Title:         title,
		Body:          body,
		SelectionMode: mode,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// AttachMessageID marks a role message as live by storing the ID of the
// Discord message that backs it.
func AttachMessageID(db *sqlx.DB, roleMessageID int64, messageID string) error {
	_, err := db.Exec(
		`UPDATE role_messages SET message_id = ?, updated_at = ? WHERE id = ?`,
		messageID, time.Now().Unix(), roleMessageID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", ErrMessageIDConflict, messageID)
		}
		return fmt.Errorf("failed to attach message id: %w", err)
	}
	return nil
}

// UpdateRoleMessage rewrites the display fields of a role message.
func UpdateRoleMessage(db *sqlx.DB, roleMessageID int64, title, body string, mode model.SelectionMode) error {
	_, err := db.Exec(
		`UPDATE role_messages SET title = ?, body = ?, selection_mode = ?, updated_at = ? WHERE id = ?`,
		title, body, string(mode), time.Now().Unix(), roleMessageID,
	)
	if err != nil {
		return fmt.Errorf("failed to update role message: %w", err)
	}
	return nil
}

// GetRoleMessageByID returns the role message with the given ID, or nil
// if it does not exist.
func GetRoleMessageByID(db *sqlx.DB, roleMessageID int64) (*model.RoleMessage, error) {
	var rm model.RoleMessage
	err := db.Get(&rm, `SELECT * FROM role_messages WHERE id = ?`, roleMessageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load role message %d: %w", roleMessageID, err)
	}
	return &rm, nil
}

// GetRoleMessageByMessageID resolves a clicked Discord message back to
// its role message. A nil result means the message has no configuration
// (deleted, or never attached).
func GetRoleMessageByMessageID(db *sqlx.DB, messageID string) (*model.RoleMessage, error) {
	var rm model.RoleMessage
	err := db.Get(&rm, `SELECT * FROM role_messages WHERE message_id = ?`, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up role message by message id: %w", err)
	}
	return &rm, nil
}

// GetRoleMessagesByGuild lists a guild's role messages with their role
// counts, newest first.
func GetRoleMessagesByGuild(db *sqlx.DB, guildID string) ([]model.RoleMessageSummary, error) {
	var out []model.RoleMessageSummary
	err := db.Select(&out,
		`SELECT m.*, COUNT(r.role_id) AS role_count
		 FROM role_messages m
		 LEFT JOIN role_message_roles r ON r.role_message_id = m.id
		 WHERE m.guild_id = ?
		 GROUP BY m.id
		 ORDER BY m.created_at DESC`,
		guildID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list role messages: %w", err)
	}
	return out, nil
}

// GetRoleMessageRoles returns the role set of one role message in
// insertion order.
func GetRoleMessageRoles(db *sqlx.DB, roleMessageID int64) ([]model.RoleMessageRole, error) {
	var out []model.RoleMessageRole
	err := db.Select(&out,
		`SELECT * FROM role_message_roles WHERE role_message_id = ? ORDER BY rowid`,
		roleMessageID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles for message %d: %w", roleMessageID, err)
	}
	return out, nil
}

// ReplaceRoleMessageRoles swaps the whole role set of a role message in
// one transaction. Callers retry the full replace on failure.
func ReplaceRoleMessageRoles(db *sqlx.DB, roleMessageID int64, roles []model.RoleMessageRole) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM role_message_roles WHERE role_message_id = ?`, roleMessageID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear role set: %w", err)
	}
	for _, r := range roles {
		if _, err := tx.Exec(
			`INSERT INTO role_message_roles (role_message_id, role_id, emoji) VALUES (?, ?, ?)`,
			roleMessageID, r.RoleID, r.Emoji,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert role %s: %w", r.RoleID, err)
		}
	}
	return tx.Commit()
}

// DeleteRoleMessage removes a role message; its roles cascade. Deleting
// an already-deleted message is a no-op, so duplicate deletion events
// are harmless. Cooldowns are deliberately left alone.
func DeleteRoleMessage(db *sqlx.DB, roleMessageID int64) error {
	if _, err := db.Exec(`DELETE FROM role_messages WHERE id = ?`, roleMessageID); err != nil {
		return fmt.Errorf("failed to delete role message %d: %w", roleMessageID, err)
	}
	return nil
}

// CheckCooldown reports whether the (user, role, guild) triple is still
// on cooldown at the given instant. Expired rows count as absent.
func CheckCooldown(db *sqlx.DB, userID, roleID, guildID string, now time.Time) (bool, error) {
	var expiresAt int64
	err := db.Get(&expiresAt,
		`SELECT expires_at FROM role_cooldowns WHERE user_id = ? AND role_id = ? AND guild_id = ?`,
		userID, roleID, guildID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check cooldown: %w", err)
	}
	return expiresAt > now.UnixMilli(), nil
}

// AcquireCooldown atomically claims the cooldown slot for the triple:
// the row is inserted, or overwritten only when the stored cooldown has
// already expired. Returns false when a live cooldown blocked the claim.
// This is what keeps two near-simultaneous clicks from both proceeding.
func AcquireCooldown(db *sqlx.DB, userID, roleID, guildID string, now, expiresAt time.Time) (bool, error) {
	res, err := db.Exec(
		`INSERT INTO role_cooldowns (user_id, role_id, guild_id, expires_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, role_id, guild_id) DO UPDATE SET expires_at = excluded.expires_at
		 WHERE role_cooldowns.expires_at <= ?`,
		userID, roleID, guildID, expiresAt.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to acquire cooldown: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ReleaseCooldown drops a previously acquired cooldown. Used when the
// role mutation behind it failed, so the user can immediately retry.
func ReleaseCooldown(db *sqlx.DB, userID, roleID, guildID string) error {
	_, err := db.Exec(
		`DELETE FROM role_cooldowns WHERE user_id = ? AND role_id = ? AND guild_id = ?`,
		userID, roleID, guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to release cooldown: %w", err)
	}
	return nil
}

// SetCooldown unconditionally upserts a cooldown for the triple.
func SetCooldown(db *sqlx.DB, userID, roleID, guildID string, expiresAt time.Time) error {
	_, err := db.Exec(
		`INSERT INTO role_cooldowns (user_id, role_id, guild_id, expires_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, role_id, guild_id) DO UPDATE SET expires_at = excluded.expires_at`,
		userID, roleID, guildID, expiresAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to set cooldown: %w", err)
	}
	return nil
}

// SweepExpiredCooldowns bulk-deletes every cooldown that expired at or
// before the given instant and returns how many rows went away.
func SweepExpiredCooldowns(db *sqlx.DB, now time.Time) (int64, error) {
	res, err := db.Exec(`DELETE FROM role_cooldowns WHERE expires_at <= ?`, now.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep cooldowns: %w", err)
	}
	return res.RowsAffected()
}
