package selfrole

import (
	"fmt"
	"strings"

	"selfrole-bot/model"
	"selfrole-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleAdminCommand dispatches the /selfrole subcommands. The caller
// has already verified the member may manage roles.
func HandleAdminCommand(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Service) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		utils.SendEphemeralResponse(s, i, "Missing subcommand.")
		return
	}
	sub := data.Options[0]
	options := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, opt := range sub.Options {
		options[opt.Name] = opt
	}

	switch sub.Name {
	case "create":
		handleCreate(s, i, svc, options)
	case "update":
		handleUpdate(s, i, svc, options)
	case "delete":
		handleDelete(s, i, svc, options)
	case "list":
		handleList(s, i, svc)
	case "get":
		handleGet(s, i, svc, options)
	default:
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("Unknown subcommand %q.", sub.Name))
	}
}

func parseRolesOption(options map[string]*discordgo.ApplicationCommandInteractionDataOption) ([]model.RoleMessageRole, error) {
	opt, ok := options["roles"]
	if !ok {
		return nil, fmt.Errorf("missing roles option")
	}
	return utils.ParseRoleSpecs(opt.StringValue())
}

func handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Service, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	roles, err := parseRolesOption(options)
	if err != nil {
		utils.SendEphemeralResponse(s, i, "Invalid roles: "+err.Error())
		return
	}

	channelID := i.ChannelID
	if opt, ok := options["channel"]; ok {
		channelID = opt.ChannelValue(nil).ID
	}

	if err := utils.DeferResponse(s, i, true); err != nil {
		return
	}

	rm, err := svc.Create(
		i.GuildID,
		channelID,
		options["title"].StringValue(),
		options["body"].StringValue(),
		model.SelectionMode(options["mode"].StringValue()),
		roles,
	)
	if err != nil {
		utils.SendFollowUpError(s, i.Interaction, err.Error())
		return
	}
	utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("✅ Deployed role message **#%d** to <#%s>.", rm.ID, channelID))
}

func handleUpdate(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Service, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	roles, err := parseRolesOption(options)
	if err != nil {
		utils.SendEphemeralResponse(s, i, "Invalid roles: "+err.Error())
		return
	}

	if err := utils.DeferResponse(s, i, true); err != nil {
		return
	}

	id := options["id"].IntValue()
	err = svc.Update(
		id,
		options["title"].StringValue(),
		options["body"].StringValue(),
		model.SelectionMode(options["mode"].StringValue()),
		roles,
	)
	if err != nil {
		utils.SendFollowUpError(s, i.Interaction, err.Error())
		return
	}
	utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("✅ Updated role message **#%d**.", id))
}

func handleDelete(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Service, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		return
	}
	id := options["id"].IntValue()
	if err := svc.Delete(id); err != nil {
		utils.SendFollowUpError(s, i.Interaction, err.Error())
		return
	}
	utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("✅ Deleted role message **#%d**.", id))
}

func handleList(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Service) {
	summaries, err := svc.List(i.GuildID)
	if err != nil {
		utils.SendEphemeralResponse(s, i, "Failed to list role messages: "+err.Error())
		return
	}
	if len(summaries) == 0 {
		utils.SendEphemeralResponse(s, i, "No role messages are deployed on this server.")
		return
	}

	var sb strings.Builder
	for _, rm := range summaries {
		status := "pending"
		if rm.MessageID.Valid {
			status = "live"
		}
		fmt.Fprintf(&sb, "**#%d** %s — %d role(s), %s, <#%s> (%s)\n",
			rm.ID, rm.Title, rm.RoleCount, rm.SelectionMode, rm.ChannelID, status)
	}
	utils.SendEphemeralResponse(s, i, sb.String())
}

func handleGet(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Service, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	id := options["id"].IntValue()
	rm, roles, err := svc.Get(id)
	if err != nil {
		utils.SendEphemeralResponse(s, i, "Failed to load role message: "+err.Error())
		return
	}
	if rm == nil {
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("Role message #%d does not exist.", id))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**#%d %s** (%s) in <#%s>\n%s\n", rm.ID, rm.Title, rm.SelectionMode, rm.ChannelID, rm.Body)
	for _, r := range roles {
		if r.Emoji != "" {
			fmt.Fprintf(&sb, "- %s <@&%s>\n", r.Emoji, r.RoleID)
		} else {
			fmt.Fprintf(&sb, "- <@&%s>\n", r.RoleID)
		}
	}
	utils.SendEphemeralResponse(s, i, sb.String())
}
