package commands

import (
	"selfrole-bot/commands/defs"

	"github.com/bwmarrin/discordgo"
)

// All returns every application command the bot registers.
func All() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		defs.SelfRole,
		defs.BotInfo,
		defs.Purge,
	}
}
