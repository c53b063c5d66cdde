package repository

import (
	"errors"
	"testing"
	"time"

	"train_station/apperror"
	"train_station/constants"
	"train_station/model"
	"train_station/utils"
)

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	must(t, store.CreateUser(ctx, &model.User{Email: "Rider@Example.com", Password: "x", IsActive: true}))
	err := store.CreateUser(ctx, &model.User{Email: "rider@example.com", Password: "y", IsActive: true})
	expectField(t, err, "email", constants.EMAIL_TAKEN)

	user, err := store.GetUserByEmail(ctx, "RIDER@example.com")
	must(t, err)
	if user.Email != "rider@example.com" {
		t.Errorf("email not normalised: %q", user.Email)
	}
	if _, err := store.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()
	user := model.User{Email: "rider@example.com", Password: "old", IsActive: true}
	must(t, store.CreateUser(ctx, &user))

	updated, err := store.UpdateUser(ctx, user.ID, &model.UpdateUserInput{FirstName: utils.Ptr("Ada")}, "")
	must(t, err)
	if updated.FirstName != "Ada" || updated.Password != "old" {
		t.Errorf("unexpected user %+v", updated)
	}
	updated, err = store.UpdateUser(ctx, user.ID, &model.UpdateUserInput{}, "new")
	must(t, err)
	if updated.Password != "new" {
		t.Errorf("password not replaced")
	}
}

func TestEnsureSuperuser(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()
	must(t, store.CreateUser(ctx, &model.User{Email: "ops@example.com", Password: "x", IsActive: true}))

	user, created, err := store.EnsureSuperuser(ctx, "ops@example.com", "hash")
	must(t, err)
	if created || !user.IsStaff || user.Password != "hash" {
		t.Errorf("existing user not promoted: %+v created=%v", user, created)
	}
	user, created, err = store.EnsureSuperuser(ctx, "root@example.com", "hash")
	must(t, err)
	if !created || !user.IsStaff || !user.IsActive {
		t.Errorf("superuser not created: %+v", user)
	}
}

func TestTokenBlacklist(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	must(t, store.BlacklistToken(ctx, "jti-old", 1, now.Add(-time.Hour)))
	must(t, store.BlacklistToken(ctx, "jti-new", 1, now.Add(time.Hour)))
	must(t, store.BlacklistToken(ctx, "jti-new", 1, now.Add(time.Hour)))

	listed, err := store.IsBlacklisted(ctx, "jti-new")
	must(t, err)
	if !listed {
		t.Error("jti-new should be blacklisted")
	}

	removed, err := store.PurgeExpiredBlacklist(ctx, now)
	must(t, err)
	if removed != 1 {
		t.Errorf("purged %d entries, expected 1", removed)
	}
	if listed, _ := store.IsBlacklisted(ctx, "jti-old"); listed {
		t.Error("expired entry survived the purge")
	}
}
