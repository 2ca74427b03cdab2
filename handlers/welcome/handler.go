package welcome

import (
	"log"
	"strings"

	"selfrole-bot/model"

	"github.com/bwmarrin/discordgo"
)

// HandleMemberAdd posts the configured welcome message when a member
// joins a guild with welcome settings.
func HandleMemberAdd(s *discordgo.Session, e *discordgo.GuildMemberAdd, cfg *model.Config) {
	gc, ok := cfg.GuildConfigs[e.GuildID]
	if !ok || gc.WelcomeChannelID == "" || gc.WelcomeMessage == "" {
		return
	}
	content := strings.ReplaceAll(gc.WelcomeMessage, "{user}", e.User.Mention())
	if _, err := s.ChannelMessageSend(gc.WelcomeChannelID, content); err != nil {
		log.Printf("welcome: failed to send welcome message in guild %s: %v", e.GuildID, err)
	}
}

// HandleMemberRemove posts the configured goodbye message when a member
// leaves.
func HandleMemberRemove(s *discordgo.Session, e *discordgo.GuildMemberRemove, cfg *model.Config) {
	gc, ok := cfg.GuildConfigs[e.GuildID]
	if !ok || gc.GoodbyeChannelID == "" || gc.GoodbyeMessage == "" {
		return
	}
	content := strings.ReplaceAll(gc.GoodbyeMessage, "{user}", e.User.Username)
	if _, err := s.ChannelMessageSend(gc.GoodbyeChannelID, content); err != nil {
		log.Printf("welcome: failed to send goodbye message in guild %s: %v", e.GuildID, err)
	}
}
