package selfrole

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"selfrole-bot/model"
	"selfrole-bot/utils/database"

	"github.com/bwmarrin/discordgo"
)

func newServiceFixture(t *testing.T) (*Service, *fakeSession) {
	t.Helper()
	db, err := database.Init(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	f := newFakeSession()
	f.guildRoles[testGuild] = []*discordgo.Role{
		{ID: "botrole", Name: "Bot", Position: 10},
		{ID: "101", Name: "Gamer", Position: 1},
		{ID: "102", Name: "Music", Position: 2},
	}
	f.members[testGuild+":"+testBot] = &discordgo.Member{
		User:  &discordgo.User{ID: testBot},
		Roles: []string{"botrole"},
	}

	return &Service{Session: f, DB: db, BotUserID: testBot}, f
}

func twoRoles() []model.RoleMessageRole {
	return []model.RoleMessageRole{
		{RoleID: "101", Emoji: "🎮"},
		{RoleID: "102", Emoji: "🎵"},
	}
}

func TestCreateDeploysAndAttaches(t *testing.T) {
	svc, f := newServiceFixture(t)

	rm, err := svc.Create(testGuild, "chan-1", "Pick your roles", "Click below.", model.SelectionModeMultiple, twoRoles())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !rm.MessageID.Valid {
		t.Fatal("created role message must be live")
	}
	if len(f.sent) != 1 {
		t.Fatalf("expected one sent message, got %d", len(f.sent))
	}

	got, err := database.GetRoleMessageByMessageID(svc.DB, rm.MessageID.String)
	if err != nil || got == nil {
		t.Fatalf("deployed message not resolvable: %v %v", got, err)
	}

	summaries, err := svc.List(testGuild)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 1 || summaries[0].RoleCount != 2 {
		t.Errorf("unexpected list %+v", summaries)
	}
}

func TestCreateRejectsOversizedRoleSet(t *testing.T) {
	svc, f := newServiceFixture(t)

	var roles []model.RoleMessageRole
	for n := 0; n < 26; n++ {
		roles = append(roles, model.RoleMessageRole{RoleID: fmt.Sprintf("r%d", n)})
	}

	if _, err := svc.Create(testGuild, "chan-1", "T", "B", model.SelectionModeMultiple, roles); err == nil {
		t.Fatal("expected validation error for 26 roles")
	}
	if len(f.sent) != 0 {
		t.Error("validation failures must not reach the platform")
	}
	summaries, err := svc.List(testGuild)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("store must hold no partial config, got %+v", summaries)
	}
}

func TestCreateRollsBackWhenSendFails(t *testing.T) {
	svc, f := newServiceFixture(t)
	f.sendErr = errors.New("channel deleted")

	if _, err := svc.Create(testGuild, "chan-1", "T", "B", model.SelectionModeMultiple, twoRoles()); err == nil {
		t.Fatal("expected deploy failure")
	}

	summaries, err := svc.List(testGuild)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("failed deploy must leave no trace, got %+v", summaries)
	}
}

func TestCreateRejectsUnmanageableRole(t *testing.T) {
	svc, f := newServiceFixture(t)
	f.guildRoles[testGuild][1].Position = 99 // Gamer above the bot

	_, err := svc.Create(testGuild, "chan-1", "T", "B", model.SelectionModeMultiple, twoRoles())
	if err == nil {
		t.Fatal("expected authority error")
	}
	if got := err.Error(); !strings.Contains(got, "Gamer") {
		t.Errorf("authority error should name the role, got %q", got)
	}
	if len(f.sent) != 0 {
		t.Error("authority failures must not reach the platform")
	}
}

func TestUpdateEditsLiveMessage(t *testing.T) {
	svc, f := newServiceFixture(t)
	rm, err := svc.Create(testGuild, "chan-1", "Old", "Old body", model.SelectionModeMultiple, twoRoles())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = svc.Update(rm.ID, "New", "New body", model.SelectionModeRadio, twoRoles()[:1])
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(f.edited) != 1 {
		t.Fatalf("expected one edit, got %d", len(f.edited))
	}
	if f.edited[0].ID != rm.MessageID.String {
		t.Errorf("edited wrong message %q", f.edited[0].ID)
	}

	got, roles, err := svc.Get(rm.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "New" || got.SelectionMode != model.SelectionModeRadio {
		t.Errorf("store not updated: %+v", got)
	}
	if len(roles) != 1 {
		t.Errorf("role set not replaced: %+v", roles)
	}
}

func TestUpdateEditFailureKeepsStore(t *testing.T) {
	svc, f := newServiceFixture(t)
	rm, err := svc.Create(testGuild, "chan-1", "Old", "Old body", model.SelectionModeMultiple, twoRoles())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	f.editErr = errors.New("edit failed")
	if err := svc.Update(rm.ID, "New", "New body", model.SelectionModeMultiple, twoRoles()); err == nil {
		t.Fatal("expected edit failure to surface")
	}

	// The store stays authoritative; only the live message is stale.
	got, _, err := svc.Get(rm.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Title != "New" {
		t.Errorf("store should carry the new configuration, got %+v", got)
	}
}

func TestDeleteToleratesMissingMessage(t *testing.T) {
	svc, f := newServiceFixture(t)
	rm, err := svc.Create(testGuild, "chan-1", "T", "B", model.SelectionModeMultiple, twoRoles())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Message already gone on the platform: desired end state holds.
	f.deleteErr = &discordgo.RESTError{Response: &http.Response{StatusCode: 404}}
	if err := svc.Delete(rm.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	summaries, err := svc.List(testGuild)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("expected empty list after delete, got %+v", summaries)
	}

	// Deleting again is a no-op.
	if err := svc.Delete(rm.ID); err != nil {
		t.Errorf("duplicate delete errored: %v", err)
	}
}
