package repository

import (
	"context"
	"testing"

	"packageTrackingManagement/internal/testutil"
	"packageTrackingManagement/models"
)

func seedUsers(t *testing.T, users *UserRepository, names ...string) []*models.User {
	t.Helper()
	out := make([]*models.User, 0, len(names))
	for _, n := range names {
		u, err := users.Create(context.Background(), n, "digest", n+"@example.com", models.RoleClient)
		if err != nil {
			t.Fatalf("seed user %s: %v", n, err)
		}
		out = append(out, u)
	}
	return out
}

func TestPackageRepository_CreateRemoveLifecycle(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "pkglifecycle")
	users := NewUserRepository(d)
	repo := NewPackageRepository(d)
	ctx := context.Background()

	seeded := seedUsers(t, users, "sender", "receiver")

	id, err := repo.Create(ctx, &models.Package{
		SenderID:        seeded[0].ID,
		ReceiverID:      seeded[1].ID,
		Name:            "Box A",
		SenderCity:      "Lisbon",
		DestinationCity: "Porto",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	p, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.IsTracked {
		t.Fatalf("new package must start untracked")
	}
	if p.CreatedAt == "" {
		t.Fatalf("creation timestamp not set")
	}

	removed, err := repo.Delete(ctx, id)
	if err != nil || !removed {
		t.Fatalf("first delete: removed=%v err=%v", removed, err)
	}
	removed, err = repo.Delete(ctx, id)
	if err != nil || removed {
		t.Fatalf("second delete must report false: removed=%v err=%v", removed, err)
	}
}

func TestPackageRepository_MembershipFilter(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "pkgmembership")
	users := NewUserRepository(d)
	repo := NewPackageRepository(d)
	ctx := context.Background()

	seeded := seedUsers(t, users, "u1", "u2", "u3")
	u1, u2, u3 := seeded[0], seeded[1], seeded[2]

	mk := func(sender, receiver int64, name string) {
		t.Helper()
		if _, err := repo.Create(ctx, &models.Package{
			SenderID: sender, ReceiverID: receiver, Name: name,
			SenderCity: "A", DestinationCity: "B",
		}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	mk(u1.ID, u2.ID, "one")   // visible to u1, u2
	mk(u2.ID, u3.ID, "two")   // visible to u2, u3
	mk(u3.ID, u3.ID, "three") // visible to u3 only

	list, err := repo.ListByUser(ctx, u1.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "one" {
		t.Fatalf("u1 should see exactly [one], got %+v", list)
	}
	for _, p := range list {
		if p.SenderID != u1.ID && p.ReceiverID != u1.ID {
			t.Fatalf("membership violation: %+v", p)
		}
	}

	list, err = repo.ListByUser(ctx, u2.ID)
	if err != nil || len(list) != 2 {
		t.Fatalf("u2 should see 2 packages, got %d (err=%v)", len(list), err)
	}
}

func TestPackageRepository_SearchMatchesEmptyTermAndSubstring(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "pkgsearch")
	users := NewUserRepository(d)
	repo := NewPackageRepository(d)
	ctx := context.Background()

	seeded := seedUsers(t, users, "owner", "peer")
	owner, peer := seeded[0], seeded[1]

	for _, row := range []struct{ name, desc string }{
		{"Laptop Box", "fragile electronics"},
		{"Books", "paperback novels"},
		{"Clothes", "winter JACKETS"},
	} {
		if _, err := repo.Create(ctx, &models.Package{
			SenderID: owner.ID, ReceiverID: peer.ID, Name: row.name, Description: row.desc,
			SenderCity: "A", DestinationCity: "B",
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	// Empty term returns the same set as ListByUser.
	all, err := repo.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	searched, err := repo.Search(ctx, owner.ID, "")
	if err != nil {
		t.Fatalf("search empty: %v", err)
	}
	if len(searched) != len(all) {
		t.Fatalf("empty-term search: want %d, got %d", len(all), len(searched))
	}

	// Case-insensitive match against name.
	got, err := repo.Search(ctx, owner.ID, "laptop")
	if err != nil || len(got) != 1 || got[0].Name != "Laptop Box" {
		t.Fatalf("search by name: %v %+v", err, got)
	}
	// Case-insensitive match against description.
	got, err = repo.Search(ctx, owner.ID, "jackets")
	if err != nil || len(got) != 1 || got[0].Name != "Clothes" {
		t.Fatalf("search by description: %v %+v", err, got)
	}
	// No match yields empty, not error.
	got, err = repo.Search(ctx, owner.ID, "zzz-no-match")
	if err != nil || len(got) != 0 {
		t.Fatalf("no-match search: %v %+v", err, got)
	}
}

func TestPackageRepository_ListAll_JoinsUsernames(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "pkglistall")
	users := NewUserRepository(d)
	repo := NewPackageRepository(d)
	ctx := context.Background()

	seeded := seedUsers(t, users, "sender", "receiver")
	if _, err := repo.Create(ctx, &models.Package{
		SenderID: seeded[0].ID, ReceiverID: seeded[1].ID, Name: "joined",
		SenderCity: "A", DestinationCity: "B",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := repo.ListAll(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list all: %v %d", err, len(list))
	}
	if list[0].SenderUsername != "sender" || list[0].ReceiverUsername != "receiver" {
		t.Fatalf("usernames not joined: %+v", list[0])
	}
}
