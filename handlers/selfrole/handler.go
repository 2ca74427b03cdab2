package selfrole

import (
	"fmt"
	"log"
	"time"

	"selfrole-bot/model"
	"selfrole-bot/utils"
	"selfrole-bot/utils/database"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

// CooldownDuration is how long a member must wait between successful
// clicks on the same role.
const CooldownDuration = 5 * time.Second

func respondEphemeral(s Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("selfrole: failed to respond to interaction: %v", err)
	}
}

// HandleButtonClick runs one self-role button interaction end to end:
// cooldown, configuration lookup, hierarchy check, radio reconciliation,
// role mutation, and exactly one ephemeral reply. Every failure after
// the cooldown was claimed releases it again, so only a successful
// mutation actually costs the user their cooldown.
func HandleButtonClick(s Session, db *sqlx.DB, i *discordgo.InteractionCreate, botUserID string) {
	bid, err := DecodeButtonID(i.MessageComponentData().CustomID)
	if err != nil {
		// No valid interaction context to reply into.
		log.Printf("selfrole: dropping click with malformed custom id: %v", err)
		return
	}
	if i.Member == nil || i.Member.User == nil || i.Message == nil {
		log.Printf("selfrole: dropping click without member or message context")
		return
	}

	guildID := i.GuildID
	userID := i.Member.User.ID
	now := time.Now()

	acquired, err := database.AcquireCooldown(db, userID, bid.RoleID, guildID, now, now.Add(CooldownDuration))
	if err != nil {
		log.Printf("selfrole: cooldown acquire failed for user %s role %s: %v", userID, bid.RoleID, err)
		respondEphemeral(s, i, "Something went wrong, please try again.")
		return
	}
	if !acquired {
		respondEphemeral(s, i, "You're doing that too quickly. Try again in a moment.")
		return
	}

	// The cooldown is held now; give it back on every failure path.
	fail := func(message string) {
		if err := database.ReleaseCooldown(db, userID, bid.RoleID, guildID); err != nil {
			log.Printf("selfrole: failed to release cooldown for user %s role %s: %v", userID, bid.RoleID, err)
		}
		respondEphemeral(s, i, message)
	}

	rm, err := database.GetRoleMessageByMessageID(db, i.Message.ID)
	if err != nil {
		log.Printf("selfrole: config lookup failed for message %s: %v", i.Message.ID, err)
		fail("Something went wrong, please try again.")
		return
	}
	if rm == nil || rm.ID != bid.RoleMessageID {
		// The message outlived its configuration, or carries buttons
		// from an older deployment.
		fail("This role message is no longer valid.")
		return
	}

	guildRoleList, err := s.GuildRoles(guildID)
	if err != nil {
		log.Printf("selfrole: failed to fetch roles for guild %s: %v", guildID, err)
		fail("Something went wrong, please try again.")
		return
	}
	guildRoles := rolesByID(guildRoleList)

	target, ok := guildRoles[bid.RoleID]
	if !ok {
		fail("That role no longer exists on this server.")
		return
	}

	botMember, err := s.GuildMember(guildID, botUserID)
	if err != nil {
		log.Printf("selfrole: failed to fetch own member record in guild %s: %v", guildID, err)
		fail("Something went wrong, please try again.")
		return
	}
	isAdmin, positions := utils.ResolveBotAuthority(botMember, guildRoleList)
	if !isAdmin && !utils.CanManageRole(positions, target.Position) {
		fail(fmt.Sprintf("I can't manage the **%s** role, it sits above my highest role.", target.Name))
		return
	}

	configRoles, err := database.GetRoleMessageRoles(db, rm.ID)
	if err != nil {
		log.Printf("selfrole: failed to load role set for message %d: %v", rm.ID, err)
		fail("Something went wrong, please try again.")
		return
	}
	if !roleSetContains(configRoles, bid.RoleID) {
		fail("This role message is no longer valid.")
		return
	}

	holds := memberHoldsRole(i.Member, bid.RoleID)

	var reconcile ReconcileResult
	if rm.SelectionMode == model.SelectionModeRadio && !holds {
		reconcile = reconcileRadioSelection(s, guildID, userID, i.Member.Roles, configRoles, bid.RoleID, isAdmin, positions, guildRoles)
		for _, failed := range reconcile.Failed {
			log.Printf("selfrole: radio reconciliation could not remove role %s from user %s: %v", failed.RoleID, userID, failed.Err)
		}
	}

	var verb string
	if holds {
		err = s.GuildMemberRoleRemove(guildID, userID, bid.RoleID)
		verb = "Removed"
	} else {
		err = s.GuildMemberRoleAdd(guildID, userID, bid.RoleID)
		verb = "Added"
	}
	if err != nil {
		log.Printf("selfrole: role mutation failed for user %s role %s: %v", userID, bid.RoleID, err)
		if isMissingPermissions(err) {
			fail(fmt.Sprintf("I don't have permission to manage the **%s** role.", target.Name))
		} else {
			fail(fmt.Sprintf("Couldn't update the **%s** role, please try again.", target.Name))
		}
		return
	}

	message := fmt.Sprintf("%s **%s**.", verb, target.Name)
	if n := len(reconcile.Failed); n > 0 {
		message += fmt.Sprintf(" (%d previously held role(s) could not be removed)", n)
	}
	respondEphemeral(s, i, message)
}

func memberHoldsRole(member *discordgo.Member, roleID string) bool {
	for _, id := range member.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}

func roleSetContains(roles []model.RoleMessageRole, roleID string) bool {
	for _, r := range roles {
		if r.RoleID == roleID {
			return true
		}
	}
	return false
}
