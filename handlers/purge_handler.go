package handlers

import (
	"fmt"
	"log"

	"selfrole-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// PurgeHandler bulk-deletes the most recent messages in the channel the
// command was invoked from.
func PurgeHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !utils.HasManageMessages(i.Member) {
		utils.SendEphemeralResponse(s, i, "You need the Manage Messages permission to use this.")
		return
	}

	count := 10
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "count" {
			count = int(opt.IntValue())
		}
	}
	if count < 1 || count > 100 {
		utils.SendEphemeralResponse(s, i, "Count must be between 1 and 100.")
		return
	}

	if err := utils.DeferResponse(s, i, true); err != nil {
		return
	}

	messages, err := s.ChannelMessages(i.ChannelID, count, "", "", "")
	if err != nil {
		utils.SendFollowUpError(s, i.Interaction, "Failed to fetch messages: "+err.Error())
		return
	}
	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}

	if err := s.ChannelMessagesBulkDelete(i.ChannelID, ids); err != nil {
		log.Printf("purge: bulk delete failed in channel %s: %v", i.ChannelID, err)
		utils.SendFollowUpError(s, i.Interaction, "Failed to delete messages: "+err.Error())
		return
	}
	utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("🧹 Deleted %d message(s).", len(ids)))
}
