package selfrole

import (
	"fmt"
	"strconv"
	"strings"
)

const customIDPrefix = "selfrole"

// ButtonID identifies one button on one role message. Role message IDs
// are globally unique and role IDs are unique within a message, so the
// encoding never collides.
type ButtonID struct {
	RoleMessageID int64
	RoleID        string
}

// Encode renders the identifier in the form "selfrole:<msgID>:<roleID>".
func (b ButtonID) Encode() string {
	return fmt.Sprintf("%s:%d:%s", customIDPrefix, b.RoleMessageID, b.RoleID)
}

// DecodeButtonID parses a component custom ID produced by Encode.
func DecodeButtonID(customID string) (ButtonID, error) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 || parts[0] != customIDPrefix {
		return ButtonID{}, fmt.Errorf("malformed self-role custom id %q", customID)
	}
	msgID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || msgID <= 0 {
		return ButtonID{}, fmt.Errorf("malformed role message id in custom id %q", customID)
	}
	if parts[2] == "" {
		return ButtonID{}, fmt.Errorf("missing role id in custom id %q", customID)
	}
	return ButtonID{RoleMessageID: msgID, RoleID: parts[2]}, nil
}

// IsButtonID reports whether a component custom ID belongs to this
// feature, for routing at the gateway handler.
func IsButtonID(customID string) bool {
	return strings.HasPrefix(customID, customIDPrefix+":")
}
