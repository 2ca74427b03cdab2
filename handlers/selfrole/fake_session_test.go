package selfrole

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// fakeSession implements Session for tests. Errors can be injected per
// call; every mutation and response is recorded.
type fakeSession struct {
	guildRoles map[string][]*discordgo.Role
	members    map[string]*discordgo.Member // "guildID:userID"

	sendErr   error
	editErr   error
	deleteErr error
	addErr    error
	removeErr error

	nextMessageID int
	sent          []*discordgo.MessageSend
	edited        []*discordgo.MessageEdit
	deletedMsgs   []string
	rolesAdded    []string // "guildID:userID:roleID"
	rolesRemoved  []string
	responses     []*discordgo.InteractionResponse
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		guildRoles: make(map[string][]*discordgo.Role),
		members:    make(map[string]*discordgo.Member),
	}
}

func (f *fakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.nextMessageID++
	f.sent = append(f.sent, data)
	return &discordgo.Message{ID: fmt.Sprintf("msg-%d", f.nextMessageID), ChannelID: channelID}, nil
}

func (f *fakeSession) ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.editErr != nil {
		return nil, f.editErr
	}
	f.edited = append(f.edited, m)
	return &discordgo.Message{ID: m.ID, ChannelID: m.Channel}, nil
}

func (f *fakeSession) ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedMsgs = append(f.deletedMsgs, messageID)
	return nil
}

func (f *fakeSession) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	m, ok := f.members[guildID+":"+userID]
	if !ok {
		return nil, fmt.Errorf("member %s not found in guild %s", userID, guildID)
	}
	return m, nil
}

func (f *fakeSession) GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	return f.guildRoles[guildID], nil
}

func (f *fakeSession) GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.rolesAdded = append(f.rolesAdded, guildID+":"+userID+":"+roleID)
	return nil
}

func (f *fakeSession) GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.rolesRemoved = append(f.rolesRemoved, guildID+":"+userID+":"+roleID)
	return nil
}

func (f *fakeSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeSession) lastResponse() *discordgo.InteractionResponse {
	if len(f.responses) == 0 {
		return nil
	}
	return f.responses[len(f.responses)-1]
}
