package utils

import "github.com/bwmarrin/discordgo"

// CanManageRole reports whether a role at targetPosition can be granted
// or revoked by a bot holding roles at the given positions. Discord only
// lets a member manage roles strictly below its own highest role.
func CanManageRole(botPositions []int, targetPosition int) bool {
	for _, p := range botPositions {
		if p > targetPosition {
			return true
		}
	}
	return false
}

// ResolveBotAuthority inspects the bot's member record against the
// guild's role list. When any of the bot's roles carries Administrator
// the hierarchy no longer matters and the returned positions are empty;
// callers must check isAdmin before consulting them.
func ResolveBotAuthority(botMember *discordgo.Member, guildRoles []*discordgo.Role) (isAdmin bool, positions []int) {
	if botMember == nil {
		return false, nil
	}

	rolesByID := make(map[string]*discordgo.Role, len(guildRoles))
	for _, r := range guildRoles {
		rolesByID[r.ID] = r
	}

	for _, roleID := range botMember.Roles {
		role, ok := rolesByID[roleID]
		if !ok {
			continue
		}
		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true, nil
		}
		positions = append(positions, role.Position)
	}
	return false, positions
}
