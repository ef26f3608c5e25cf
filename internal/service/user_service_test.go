package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	user, err := svc.CreateUser(context.Background(), "  alice  ")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("username = %q; want trimmed", user.Username)
	}
	if user.ID.IsZero() {
		t.Error("id not assigned")
	}

	if _, err := svc.CreateUser(context.Background(), "alice"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate err = %v; want ErrUsernameTaken", err)
	}
	if _, err := svc.CreateUser(context.Background(), "   "); !errors.Is(err, ErrEmptyUsername) {
		t.Fatalf("blank err = %v; want ErrEmptyUsername", err)
	}
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	first, err := svc.EnsureUser(context.Background(), "bob")
	if err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	second, err := svc.EnsureUser(context.Background(), "bob")
	if err != nil {
		t.Fatalf("EnsureUser again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("ids differ: %s vs %s", first.ID.Hex(), second.ID.Hex())
	}

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("got %d users; want 1", len(users))
	}
}

func TestGetUserByID(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	user, _ := svc.CreateUser(context.Background(), "carol")
	got, err := svc.GetUserByID(context.Background(), user.ID)
	if err != nil || got.Username != "carol" {
		t.Fatalf("GetUserByID = %+v, %v", got, err)
	}

	if _, err := svc.GetUserByID(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("missing err = %v; want ErrUserNotFound", err)
	}
}
