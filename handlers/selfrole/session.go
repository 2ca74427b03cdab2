package selfrole

import "github.com/bwmarrin/discordgo"

// Session is the slice of *discordgo.Session the self-role feature
// touches. Keeping it narrow lets tests drive the click and deploy
// paths with a fake.
type Session interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// isNotFound reports whether err is a Discord 404. A 404 on delete means
// the desired end state already holds.
func isNotFound(err error) bool {
	restErr, ok := err.(*discordgo.RESTError)
	return ok && restErr.Response != nil && restErr.Response.StatusCode == 404
}

// isMissingPermissions reports whether err is a Discord 403, used to
// pick the permission-flavored failure wording.
func isMissingPermissions(err error) bool {
	restErr, ok := err.(*discordgo.RESTError)
	return ok && restErr.Response != nil && restErr.Response.StatusCode == 403
}
