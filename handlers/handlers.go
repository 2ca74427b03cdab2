package handlers

import (
	"log"

	"selfrole-bot/bot"
	"selfrole-bot/handlers/mediaonly"
	"selfrole-bot/handlers/selfrole"
	"selfrole-bot/handlers/welcome"
	"selfrole-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// Register wires all command and gateway event handlers into the bot.
func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	addHandlers(b)
}

func selfroleService(s *discordgo.Session, b *bot.Bot) *selfrole.Service {
	return &selfrole.Service{
		Session:   s,
		DB:        b.DB,
		BotUserID: s.State.User.ID,
	}
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"selfrole": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			if !utils.HasManageRoles(i.Member) {
				utils.SendEphemeralResponse(s, i, "You need the Manage Roles permission to use this.")
				return
			}
			selfrole.HandleAdminCommand(s, i, selfroleService(s, b))
		},
		"botinfo": SystemInfoHandler,
		"purge":   PurgeHandler,
	}
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
		if b.Config.LogChannelID != "" {
			if err := utils.LogInfo(s, b.Config.LogChannelID, "System", "Startup", "Bot has started successfully."); err != nil {
				log.Printf("Failed to send startup log: %v", err)
			}
		}
	})

	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			if h, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
				h(s, i)
			}
		case discordgo.InteractionMessageComponent:
			customID := i.MessageComponentData().CustomID
			if selfrole.IsButtonID(customID) {
				selfrole.HandleButtonClick(s, b.DB, i, s.State.User.ID)
			}
		}
	})

	// A deleted role message takes its configuration with it.
	b.Session.AddHandler(func(s *discordgo.Session, e *discordgo.MessageDelete) {
		selfrole.HandleMessageDelete(b.DB, e.ID)
	})

	b.Session.AddHandler(func(s *discordgo.Session, e *discordgo.GuildMemberAdd) {
		welcome.HandleMemberAdd(s, e, b.Config)
	})
	b.Session.AddHandler(func(s *discordgo.Session, e *discordgo.GuildMemberRemove) {
		welcome.HandleMemberRemove(s, e, b.Config)
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		mediaonly.HandleMessageCreate(s, m, b.Config)
	})
}
