package audit_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/people-backend/internal/data/repos/audit"
	"github.com/yungbote/people-backend/internal/data/repos/testutil"
	"github.com/yungbote/people-backend/internal/platform/dbctx"
)

func TestAuditRepo_CreateAndList(t *testing.T) {
	db := testutil.DB(t)
	repo := audit.NewRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	id := uuid.New()
	extra, _ := json.Marshal(map[string]any{"path": "individuals/a.png"})
	if err := repo.Create(dbc, &audit.Event{Action: "person.photo_attached", EntityType: "individual", EntityID: &id, Extra: datatypes.JSON(extra)}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(dbc, &audit.Event{Action: "person.created", EntityType: "individual", EntityID: &id}); err != nil {
		t.Fatalf("Create without extra: %v", err)
	}

	got, err := repo.ListByEntity(dbc, id)
	if err != nil {
		t.Fatalf("ListByEntity: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByEntity: want=2 got=%d", len(got))
	}
	for _, ev := range got {
		if ev.Action != "person.photo_attached" {
			continue
		}
		var decoded map[string]any
		if err := json.Unmarshal(ev.Extra, &decoded); err != nil {
			t.Fatalf("extra: %v", err)
		}
		if decoded["path"] != "individuals/a.png" {
			t.Fatalf("unexpected extra: %+v", decoded)
		}
		return
	}
	t.Fatalf("photo_attached event missing")
}
