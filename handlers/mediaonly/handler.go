package mediaonly

import (
	"log"

	"selfrole-bot/model"

	"github.com/bwmarrin/discordgo"
)

// HandleMessageCreate deletes attachment-less messages posted in a
// guild's configured media-only channels. Bots and embeds are left
// alone.
func HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate, cfg *model.Config) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	gc, ok := cfg.GuildConfigs[m.GuildID]
	if !ok {
		return
	}
	if !isMediaOnly(gc.MediaOnlyChannels, m.ChannelID) {
		return
	}
	if len(m.Attachments) > 0 || len(m.Embeds) > 0 {
		return
	}
	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		log.Printf("mediaonly: failed to delete message %s in channel %s: %v", m.ID, m.ChannelID, err)
	}
}

func isMediaOnly(channels []string, channelID string) bool {
	for _, id := range channels {
		if id == channelID {
			return true
		}
	}
	return false
}
