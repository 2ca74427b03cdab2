package bot

import (
	"log"

	"selfrole-bot/commands"
	"selfrole-bot/model"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

// Bot bundles the gateway session, the store and the background
// scheduler.
type Bot struct {
	Session            *discordgo.Session
	DB                 *sqlx.DB
	Config             *model.Config
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	RegisteredCommands []*discordgo.ApplicationCommand

	scheduler *Scheduler
}

// New creates the Discord session and the bot around it. The session is
// not opened yet; Run does that.
func New(cfg *model.Config, db *sqlx.DB) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages

	b := &Bot{
		Session: dg,
		DB:      db,
		Config:  cfg,
	}
	b.scheduler = NewScheduler(b)
	return b, nil
}

// RegisterCommands bulk-overwrites the application's global commands.
func (b *Bot) RegisterCommands() {
	cmds := commands.All()
	registered, err := b.Session.ApplicationCommandBulkOverwrite(b.Config.AppID, "", cmds)
	if err != nil {
		log.Printf("cannot register commands: %v", err)
		return
	}
	b.RegisteredCommands = registered
	log.Printf("Registered %d commands", len(registered))
}

// Close stops the scheduler and closes the gateway session.
func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	b.scheduler.Stop()
	b.Session.Close()
}
