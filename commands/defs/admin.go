package defs

import "github.com/bwmarrin/discordgo"

var purgeManageMessages int64 = discordgo.PermissionManageMessages

// BotInfo reports host and runtime status.
var BotInfo = &discordgo.ApplicationCommand{
	Name:        "botinfo",
	Description: "Show bot and host status",
}

// Purge bulk-deletes recent messages in the current channel.
var Purge = &discordgo.ApplicationCommand{
	Name:                     "purge",
	Description:              "Bulk-delete recent messages in this channel",
	DefaultMemberPermissions: &purgeManageMessages,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "count",
			Description: "How many messages to delete (1-100, default 10)",
			Required:    false,
		},
	},
}
