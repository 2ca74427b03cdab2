package selfrole

import (
	"log"

	"selfrole-bot/utils/database"

	"github.com/jmoiron/sqlx"
)

// HandleMessageDelete prunes the configuration behind a role message
// whose Discord message was deleted out from under it. This is the only
// path that removes a configuration without an explicit admin action.
// Repeated deletion events for the same message are no-ops.
func HandleMessageDelete(db *sqlx.DB, messageID string) {
	rm, err := database.GetRoleMessageByMessageID(db, messageID)
	if err != nil {
		log.Printf("selfrole: config lookup for deleted message %s failed: %v", messageID, err)
		return
	}
	if rm == nil {
		return
	}
	if err := database.DeleteRoleMessage(db, rm.ID); err != nil {
		log.Printf("selfrole: failed to delete orphaned role message %d: %v", rm.ID, err)
		return
	}
	log.Printf("selfrole: removed role message %d after its message %s was deleted", rm.ID, messageID)
}
