package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/raagrecording/raagrecording-backend/internal/data/repos/testutil"
	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
)

func TestCommunicationRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewCommunicationRepo(db, testutil.Logger(t))

	sender := testutil.SeedUser(t, tx, domain.RoleMixer)
	recipient := testutil.SeedUser(t, tx, domain.RoleApprover)

	itemID := uuid.New()
	comm := &domain.Communication{
		FromUserID:      sender.ID,
		ToUserID:        &recipient.ID,
		RelatedItemType: domain.ItemTypeMixedTrack,
		RelatedItemID:   &itemID,
		Subject:         "mix v2",
		Message:         "please re-check the tabla levels",
	}
	if _, err := repo.Create(dbc, []*domain.Communication{comm}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	inbox, err := repo.GetForUser(dbc, recipient.ID, false)
	if err != nil || len(inbox) != 1 {
		t.Fatalf("GetForUser: err=%v len=%d", err, len(inbox))
	}
	unread, err := repo.GetForUser(dbc, recipient.ID, true)
	if err != nil || len(unread) != 1 {
		t.Fatalf("GetForUser unread: err=%v len=%d", err, len(unread))
	}

	thread, err := repo.GetThread(dbc, domain.ItemTypeMixedTrack, itemID)
	if err != nil || len(thread) != 1 {
		t.Fatalf("GetThread: err=%v len=%d", err, len(thread))
	}

	// MarkRead flips once; the second call finds nothing unread.
	ok, err := repo.MarkRead(dbc, comm.ID)
	if err != nil || !ok {
		t.Fatalf("MarkRead: ok=%v err=%v", ok, err)
	}
	ok, err = repo.MarkRead(dbc, comm.ID)
	if err != nil {
		t.Fatalf("MarkRead repeat: %v", err)
	}
	if ok {
		t.Fatal("MarkRead repeat: expected no rows affected")
	}

	unread, err = repo.GetForUser(dbc, recipient.ID, true)
	if err != nil {
		t.Fatalf("GetForUser after read: %v", err)
	}
	if len(unread) != 0 {
		t.Fatalf("expected empty unread inbox, got %d", len(unread))
	}
}
