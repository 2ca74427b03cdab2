package selfrole

import (
	"fmt"
	"log"

	"selfrole-bot/model"
	"selfrole-bot/utils/database"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

const (
	// Discord caps a message at 5 action rows of 5 buttons each.
	MaxRoles         = 25
	maxButtonsPerRow = 5

	MaxTitleLength = 256
	MaxBodyLength  = 2048

	footerMultiple = "Multiple roles"
	footerRadio    = "Single role"
)

func buildEmbed(rm *model.RoleMessage) *discordgo.MessageEmbed {
	footer := footerMultiple
	if rm.SelectionMode == model.SelectionModeRadio {
		footer = footerRadio
	}
	return &discordgo.MessageEmbed{
		Title:       rm.Title,
		Description: rm.Body,
		Color:       0x5865F2, // Discord Blurple
		Footer:      &discordgo.MessageEmbedFooter{Text: footer},
	}
}

func buttonLabel(role model.RoleMessageRole, guildRoles map[string]*discordgo.Role) string {
	name := fmt.Sprintf("Role %s", role.RoleID)
	if r, ok := guildRoles[role.RoleID]; ok {
		name = r.Name
	}
	if role.Emoji != "" {
		return role.Emoji + " " + name
	}
	return name
}

// buildButtonRows partitions the role set into action rows of at most
// five buttons each.
func buildButtonRows(roleMessageID int64, roles []model.RoleMessageRole, guildRoles map[string]*discordgo.Role) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	var current []discordgo.MessageComponent

	for _, role := range roles {
		current = append(current, discordgo.Button{
			Label:    buttonLabel(role, guildRoles),
			Style:    discordgo.SecondaryButton,
			CustomID: ButtonID{RoleMessageID: roleMessageID, RoleID: role.RoleID}.Encode(),
		})
		if len(current) == maxButtonsPerRow {
			rows = append(rows, discordgo.ActionsRow{Components: current})
			current = nil
		}
	}
	if len(current) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: current})
	}
	return rows
}

func rolesByID(guildRoles []*discordgo.Role) map[string]*discordgo.Role {
	m := make(map[string]*discordgo.Role, len(guildRoles))
	for _, r := range guildRoles {
		m[r.ID] = r
	}
	return m
}

// createAndDeploy is the two-phase create path: insert the configuration
// and its role set, send the Discord message, attach the message ID. Any
// failure after the insert deletes the configuration again (roles
// cascade), so a configuration without a live message only exists inside
// this function.
func createAndDeploy(s Session, db *sqlx.DB, guildID, channelID, title, body string, mode model.SelectionMode, roles []model.RoleMessageRole, guildRoles map[string]*discordgo.Role) (*model.RoleMessage, error) {
	rm, err := database.CreateRoleMessage(db, guildID, channelID, title, body, mode)
	if err != nil {
		return nil, err
	}

	rollback := func() {
		if derr := database.DeleteRoleMessage(db, rm.ID); derr != nil {
			log.Printf("selfrole: failed to roll back role message %d: %v", rm.ID, derr)
		}
	}

	if err := database.ReplaceRoleMessageRoles(db, rm.ID, roles); err != nil {
		rollback()
		return nil, err
	}

	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{buildEmbed(rm)},
		Components: buildButtonRows(rm.ID, roles, guildRoles),
	})
	if err != nil {
		rollback()
		return nil, fmt.Errorf("failed to send role message: %w", err)
	}

	if err := database.AttachMessageID(db, rm.ID, msg.ID); err != nil {
		// Best effort: the message we just sent has no configuration
		// behind it, take it down with the row.
		if derr := s.ChannelMessageDelete(channelID, msg.ID); derr != nil && !isNotFound(derr) {
			log.Printf("selfrole: failed to delete orphaned message %s: %v", msg.ID, derr)
		}
		rollback()
		return nil, err
	}

	rm.MessageID.String = msg.ID
	rm.MessageID.Valid = true
	return rm, nil
}

// redeploy edits the live message so it mirrors the stored
// configuration. Edit failures are surfaced but not rolled back: the
// previous message is still functional, only stale.
func redeploy(s Session, rm *model.RoleMessage, roles []model.RoleMessageRole, guildRoles map[string]*discordgo.Role) error {
	if !rm.MessageID.Valid {
		return fmt.Errorf("role message %d has no live message to edit", rm.ID)
	}
	embeds := []*discordgo.MessageEmbed{buildEmbed(rm)}
	components := buildButtonRows(rm.ID, roles, guildRoles)
	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    rm.ChannelID,
		ID:         rm.MessageID.String,
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		return fmt.Errorf("failed to edit role message %s: %w", rm.MessageID.String, err)
	}
	return nil
}
