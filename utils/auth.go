package utils

import "github.com/bwmarrin/discordgo"

// HasManageRoles reports whether the invoking member may administer
// self-role messages. Administrator implies every permission.
func HasManageRoles(member *discordgo.Member) bool {
	if member == nil {
		return false
	}
	return member.Permissions&(discordgo.PermissionManageRoles|discordgo.PermissionAdministrator) != 0
}

// HasManageMessages gates the purge command.
func HasManageMessages(member *discordgo.Member) bool {
	if member == nil {
		return false
	}
	return member.Permissions&(discordgo.PermissionManageMessages|discordgo.PermissionAdministrator) != 0
}
