package selfrole

import (
	"fmt"
	"log"

	"selfrole-bot/model"
	"selfrole-bot/utils"
	"selfrole-bot/utils/database"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

// Service is the admin-facing surface of the self-role feature. The
// slash-command layer calls it, and an external dashboard would call the
// same methods.
type Service struct {
	Session   Session
	DB        *sqlx.DB
	BotUserID string
}

func validateInput(title, body string, mode model.SelectionMode, roles []model.RoleMessageRole) error {
	if title == "" || len(title) > MaxTitleLength {
		return fmt.Errorf("title must be 1-%d characters", MaxTitleLength)
	}
	if body == "" || len(body) > MaxBodyLength {
		return fmt.Errorf("body must be 1-%d characters", MaxBodyLength)
	}
	if !mode.Valid() {
		return fmt.Errorf("invalid selection mode %q", mode)
	}
	if len(roles) == 0 || len(roles) > MaxRoles {
		return fmt.Errorf("a role message needs 1-%d roles, got %d", MaxRoles, len(roles))
	}
	return nil
}

// checkDeployAuthority verifies the bot can manage every requested role
// right now. Positions shift after deployment, so the click path checks
// again per role.
func (svc *Service) checkDeployAuthority(guildID string, roles []model.RoleMessageRole, guildRoles map[string]*discordgo.Role) error {
	botMember, err := svc.Session.GuildMember(guildID, svc.BotUserID)
	if err != nil {
		return fmt.Errorf("failed to fetch own member record: %w", err)
	}
	all := make([]*discordgo.Role, 0, len(guildRoles))
	for _, r := range guildRoles {
		all = append(all, r)
	}
	isAdmin, positions := utils.ResolveBotAuthority(botMember, all)
	for _, role := range roles {
		target, ok := guildRoles[role.RoleID]
		if !ok {
			return fmt.Errorf("role %s does not exist in this server", role.RoleID)
		}
		if !isAdmin && !utils.CanManageRole(positions, target.Position) {
			return fmt.Errorf("I can't manage the **%s** role, it sits above my highest role", target.Name)
		}
	}
	return nil
}

// Create validates, stores and deploys a new role message. On any
// failure nothing is left behind in the store.
func (svc *Service) Create(guildID, channelID, title, body string, mode model.SelectionMode, roles []model.RoleMessageRole) (*model.RoleMessage, error) {
	if err := validateInput(title, body, mode, roles); err != nil {
		return nil, err
	}

	list, err := svc.Session.GuildRoles(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch server roles: %w", err)
	}
	guildRoles := rolesByID(list)

	if err := svc.checkDeployAuthority(guildID, roles, guildRoles); err != nil {
		return nil, err
	}

	rm, err := createAndDeploy(svc.Session, svc.DB, guildID, channelID, title, body, mode, roles, guildRoles)
	if err != nil {
		return nil, err
	}
	log.Printf("selfrole: deployed role message %d to channel %s in guild %s", rm.ID, channelID, guildID)
	return rm, nil
}

// Update rewrites a role message's configuration and edits the live
// Discord message to match. When the edit fails the store stays
// authoritative and the live message is stale until the next successful
// update.
func (svc *Service) Update(roleMessageID int64, title, body string, mode model.SelectionMode, roles []model.RoleMessageRole) error {
	if err := validateInput(title, body, mode, roles); err != nil {
		return err
	}

	rm, err := database.GetRoleMessageByID(svc.DB, roleMessageID)
	if err != nil {
		return err
	}
	if rm == nil {
		return fmt.Errorf("role message %d does not exist", roleMessageID)
	}

	list, err := svc.Session.GuildRoles(rm.GuildID)
	if err != nil {
		return fmt.Errorf("failed to fetch server roles: %w", err)
	}
	guildRoles := rolesByID(list)

	if err := svc.checkDeployAuthority(rm.GuildID, roles, guildRoles); err != nil {
		return err
	}

	if err := database.UpdateRoleMessage(svc.DB, roleMessageID, title, body, mode); err != nil {
		return err
	}
	if err := database.ReplaceRoleMessageRoles(svc.DB, roleMessageID, roles); err != nil {
		return err
	}

	rm.Title, rm.Body, rm.SelectionMode = title, body, mode
	return redeploy(svc.Session, rm, roles, guildRoles)
}

// Delete takes down the live message best-effort (404 counts as done)
// and removes the configuration. Cooldowns are untouched.
func (svc *Service) Delete(roleMessageID int64) error {
	rm, err := database.GetRoleMessageByID(svc.DB, roleMessageID)
	if err != nil {
		return err
	}
	if rm == nil {
		return nil
	}
	if rm.MessageID.Valid {
		if err := svc.Session.ChannelMessageDelete(rm.ChannelID, rm.MessageID.String); err != nil && !isNotFound(err) {
			log.Printf("selfrole: failed to delete message %s for role message %d: %v", rm.MessageID.String, rm.ID, err)
		}
	}
	return database.DeleteRoleMessage(svc.DB, roleMessageID)
}

// List returns a guild's role messages with role counts.
func (svc *Service) List(guildID string) ([]model.RoleMessageSummary, error) {
	return database.GetRoleMessagesByGuild(svc.DB, guildID)
}

// Get returns one role message and its role set.
func (svc *Service) Get(roleMessageID int64) (*model.RoleMessage, []model.RoleMessageRole, error) {
	rm, err := database.GetRoleMessageByID(svc.DB, roleMessageID)
	if err != nil {
		return nil, nil, err
	}
	if rm == nil {
		return nil, nil, nil
	}
	roles, err := database.GetRoleMessageRoles(svc.DB, roleMessageID)
	if err != nil {
		return nil, nil, err
	}
	return rm, roles, nil
}
