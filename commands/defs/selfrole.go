package defs

import "github.com/bwmarrin/discordgo"

var selfroleManageRoles int64 = discordgo.PermissionManageRoles

var modeChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "Multiple roles", Value: "multiple"},
	{Name: "Single role", Value: "radio"},
}

// SelfRole is the admin command for deploying and maintaining self-role
// messages. The roles option takes comma-separated role mentions,
// optionally prefixed with an emoji: "🎮=@Gamer, @Music".
var SelfRole = &discordgo.ApplicationCommand{
	Name:                     "selfrole",
	Description:              "Manage self-service role messages",
	DefaultMemberPermissions: &selfroleManageRoles,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "create",
			Description: "Deploy a new role message",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "title",
					Description: "Embed title",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "body",
					Description: "Embed body text",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "mode",
					Description: "Whether members may hold several of these roles at once",
					Required:    true,
					Choices:     modeChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "roles",
					Description: "Comma-separated role mentions, optional emoji prefix: 🎮=@Gamer, @Music",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Target channel (defaults to the current one)",
					Required:    false,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "update",
			Description: "Rewrite a role message and edit its live message",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "id",
					Description: "Role message ID (see /selfrole list)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "title",
					Description: "Embed title",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "body",
					Description: "Embed body text",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "mode",
					Description: "Whether members may hold several of these roles at once",
					Required:    true,
					Choices:     modeChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "roles",
					Description: "Comma-separated role mentions, optional emoji prefix",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "delete",
			Description: "Delete a role message and its live message",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "id",
					Description: "Role message ID (see /selfrole list)",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "list",
			Description: "List this server's role messages",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "get",
			Description: "Show one role message in detail",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "id",
					Description: "Role message ID (see /selfrole list)",
					Required:    true,
				},
			},
		},
	},
}
