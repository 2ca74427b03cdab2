package selfrole

import (
	"fmt"

	"selfrole-bot/model"
	"selfrole-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// FailedRemoval records one sibling role that radio reconciliation
// could not take away.
type FailedRemoval struct {
	RoleID string
	Err    error
}

// ReconcileResult is the outcome of radio-mode reconciliation: which
// sibling roles were removed, and which removals failed. Partial
// results are expected and never abort the click.
type ReconcileResult struct {
	Removed []string
	Failed  []FailedRemoval
}

// reconcileRadioSelection removes every other role from the same role
// message that the member currently holds, so that after the pending
// add at most one of the message's roles remains. Removals run
// sequentially and best-effort; roles the bot cannot manage are
// reported as failures, not skipped silently.
func reconcileRadioSelection(s Session, guildID, userID string, memberRoles []string, configRoles []model.RoleMessageRole, targetRoleID string, isAdmin bool, positions []int, guildRoles map[string]*discordgo.Role) ReconcileResult {
	held := make(map[string]bool, len(memberRoles))
	for _, id := range memberRoles {
		held[id] = true
	}

	var result ReconcileResult
	for _, role := range configRoles {
		if role.RoleID == targetRoleID || !held[role.RoleID] {
			continue
		}

		guildRole, ok := guildRoles[role.RoleID]
		if !ok {
			// Deleted out-of-band; the member can't hold it anymore.
			continue
		}
		if !isAdmin && !utils.CanManageRole(positions, guildRole.Position) {
			result.Failed = append(result.Failed, FailedRemoval{
				RoleID: role.RoleID,
				Err:    fmt.Errorf("role sits above the bot's highest role"),
			})
			continue
		}

		if err := s.GuildMemberRoleRemove(guildID, userID, role.RoleID); err != nil {
			result.Failed = append(result.Failed, FailedRemoval{RoleID: role.RoleID, Err: err})
			continue
		}
		result.Removed = append(result.Removed, role.RoleID)
	}
	return result
}
