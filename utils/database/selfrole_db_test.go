package database

import (
	"errors"
	"testing"
	"time"

	"selfrole-bot/model"

	"github.com/jmoiron/sqlx"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Init(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func mustCreate(t *testing.T, db *sqlx.DB, guildID string) *model.RoleMessage {
	t.Helper()
	rm, err := CreateRoleMessage(db, guildID, "chan-1", "Pick your roles", "Click a button below.", model.SelectionModeMultiple)
	if err != nil {
		t.Fatalf("CreateRoleMessage: %v", err)
	}
	return rm
}

func TestCreateAndLookup(t *testing.T) {
	db := testDB(t)
	rm := mustCreate(t, db, "guild-1")

	if rm.MessageID.Valid {
		t.Error("new role message must not have a message id yet")
	}

	if err := AttachMessageID(db, rm.ID, "msg-1"); err != nil {
		t.Fatalf("AttachMessageID: %v", err)
	}

	got, err := GetRoleMessageByMessageID(db, "msg-1")
	if err != nil {
		t.Fatalf("GetRoleMessageByMessageID: %v", err)
	}
	if got == nil || got.ID != rm.ID {
		t.Fatalf("lookup by message id returned %+v, want id %d", got, rm.ID)
	}

	missing, err := GetRoleMessageByMessageID(db, "no-such-message")
	if err != nil {
		t.Fatalf("lookup of unknown message errored: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown message, got %+v", missing)
	}
}

func TestAttachMessageIDConflict(t *testing.T) {
	db := testDB(t)
	first := mustCreate(t, db, "guild-1")
	second := mustCreate(t, db, "guild-1")

	if err := AttachMessageID(db, first.ID, "msg-1"); err != nil {
		t.Fatalf("first attach: %v", err)
	}
	err := AttachMessageID(db, second.ID, "msg-1")
	if !errors.Is(err, ErrMessageIDConflict) {
		t.Fatalf("expected ErrMessageIDConflict, got %v", err)
	}
}

func TestReplaceRolesLeavesNoDuplicates(t *testing.T) {
	db := testDB(t)
	rm := mustCreate(t, db, "guild-1")

	set := []model.RoleMessageRole{
		{RoleID: "r1", Emoji: "🎮"},
		{RoleID: "r2", Emoji: ""},
	}
	if err := ReplaceRoleMessageRoles(db, rm.ID, set); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	// Replaying the same replace must not duplicate anything.
	if err := ReplaceRoleMessageRoles(db, rm.ID, set); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	roles, err := GetRoleMessageRoles(db, rm.ID)
	if err != nil {
		t.Fatalf("GetRoleMessageRoles: %v", err)
	}
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles after replay, got %d", len(roles))
	}
	if roles[0].RoleID != "r1" || roles[0].Emoji != "🎮" {
		t.Errorf("unexpected first role %+v", roles[0])
	}
}

func TestDeleteCascadesAndIsIdempotent(t *testing.T) {
	db := testDB(t)
	rm := mustCreate(t, db, "guild-1")
	if err := ReplaceRoleMessageRoles(db, rm.ID, []model.RoleMessageRole{{RoleID: "r1"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	if err := DeleteRoleMessage(db, rm.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	roles, err := GetRoleMessageRoles(db, rm.ID)
	if err != nil {
		t.Fatalf("GetRoleMessageRoles after delete: %v", err)
	}
	if len(roles) != 0 {
		t.Errorf("expected cascade delete of roles, got %d left", len(roles))
	}

	// Duplicate deletion events are a no-op, not an error.
	if err := DeleteRoleMessage(db, rm.ID); err != nil {
		t.Errorf("second delete errored: %v", err)
	}
}

func TestListWithRoleCounts(t *testing.T) {
	db := testDB(t)
	a := mustCreate(t, db, "guild-1")
	mustCreate(t, db, "guild-2")

	if err := ReplaceRoleMessageRoles(db, a.ID, []model.RoleMessageRole{{RoleID: "r1"}, {RoleID: "r2"}, {RoleID: "r3"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	summaries, err := GetRoleMessagesByGuild(db, "guild-1")
	if err != nil {
		t.Fatalf("GetRoleMessagesByGuild: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary for guild-1, got %d", len(summaries))
	}
	if summaries[0].RoleCount != 3 {
		t.Errorf("expected role count 3, got %d", summaries[0].RoleCount)
	}
}

func TestCooldownRoundTrip(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	if err := SetCooldown(db, "u1", "r1", "g1", now.Add(5*time.Second)); err != nil {
		t.Fatalf("SetCooldown: %v", err)
	}

	on, err := CheckCooldown(db, "u1", "r1", "g1", now)
	if err != nil {
		t.Fatalf("CheckCooldown: %v", err)
	}
	if !on {
		t.Error("expected cooldown to be active before expiry")
	}

	on, err = CheckCooldown(db, "u1", "r1", "g1", now.Add(6*time.Second))
	if err != nil {
		t.Fatalf("CheckCooldown after expiry: %v", err)
	}
	if on {
		t.Error("expected cooldown to be inactive after expiry")
	}

	// Sweeping past the expiry removes the row entirely.
	n, err := SweepExpiredCooldowns(db, now.Add(6*time.Second))
	if err != nil {
		t.Fatalf("SweepExpiredCooldowns: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 swept row, got %d", n)
	}
	on, err = CheckCooldown(db, "u1", "r1", "g1", now)
	if err != nil {
		t.Fatalf("CheckCooldown after sweep: %v", err)
	}
	if on {
		t.Error("expected no cooldown after sweep")
	}
}

func TestAcquireCooldownIsExclusive(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	ok, err := AcquireCooldown(db, "u1", "r1", "g1", now, now.Add(5*time.Second))
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if !ok {
		t.Fatal("first acquire should succeed")
	}

	// A second claim while the first is live must lose.
	ok, err = AcquireCooldown(db, "u1", "r1", "g1", now, now.Add(5*time.Second))
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if ok {
		t.Fatal("second acquire should be blocked by the live cooldown")
	}

	// Other triples are independent.
	ok, err = AcquireCooldown(db, "u2", "r1", "g1", now, now.Add(5*time.Second))
	if err != nil || !ok {
		t.Fatalf("acquire for other user: ok=%v err=%v", ok, err)
	}

	// After expiry the slot frees up again.
	later := now.Add(6 * time.Second)
	ok, err = AcquireCooldown(db, "u1", "r1", "g1", later, later.Add(5*time.Second))
	if err != nil || !ok {
		t.Fatalf("acquire after expiry: ok=%v err=%v", ok, err)
	}

	// Releasing frees the slot immediately.
	if err := ReleaseCooldown(db, "u1", "r1", "g1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, err = AcquireCooldown(db, "u1", "r1", "g1", later, later.Add(5*time.Second))
	if err != nil || !ok {
		t.Fatalf("acquire after release: ok=%v err=%v", ok, err)
	}
}
