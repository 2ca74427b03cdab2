package utils

import (
	"fmt"
	"strings"

	"selfrole-bot/model"
)

// ParseRoleSpecs turns the free-text "roles" command option into role
// entries. Entries are comma separated; each one is a role mention or a
// raw role ID, optionally prefixed with an emoji and '='.
//
//	🎮=<@&111>, <@&222>, 🎵=333
func ParseRoleSpecs(input string) ([]model.RoleMessageRole, error) {
	var out []model.RoleMessageRole
	seen := make(map[string]bool)

	for _, entry := range strings.Split(input, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		emoji := ""
		roleRef := entry
		if idx := strings.Index(entry, "="); idx >= 0 {
			emoji = strings.TrimSpace(entry[:idx])
			roleRef = strings.TrimSpace(entry[idx+1:])
		}

		roleID, err := parseRoleRef(roleRef)
		if err != nil {
			return nil, err
		}
		if seen[roleID] {
			return nil, fmt.Errorf("role %s is listed more than once", roleID)
		}
		seen[roleID] = true

		out = append(out, model.RoleMessageRole{RoleID: roleID, Emoji: emoji})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no roles given")
	}
	return out, nil
}

func parseRoleRef(ref string) (string, error) {
	if strings.HasPrefix(ref, "<@&") && strings.HasSuffix(ref, ">") {
		ref = ref[3 : len(ref)-1]
	}
	if ref == "" {
		return "", fmt.Errorf("empty role reference")
	}
	for _, c := range ref {
		if c < '0' || c > '9' {
			return "", fmt.Errorf("invalid role reference %q", ref)
		}
	}
	return ref, nil
}
