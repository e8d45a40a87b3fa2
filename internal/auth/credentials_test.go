package auth

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/rgoulding/notekeep/internal/database"
	"github.com/rgoulding/notekeep/internal/store"
)

func setupCredentials(t *testing.T) *Credentials {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewCredentials(store.NewUserStore(db), bcrypt.MinCost)
}

func TestRegisterAndVerify(t *testing.T) {
	creds := setupCredentials(t)

	user, err := creds.Register("Alice", "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected non-zero user id")
	}
	if user.PasswordHash == "s3cret" {
		t.Fatal("password stored in plaintext")
	}

	userID, err := creds.Verify("alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != user.ID {
		t.Errorf("userID = %d, want %d", userID, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	creds := setupCredentials(t)

	if _, err := creds.Register("Alice", "alice@example.com", "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := creds.Register("Other Alice", "alice@example.com", "pw2")
	if !errors.Is(err, store.ErrDuplicateEmail) {
		t.Fatalf("err = %v, want ErrDuplicateEmail", err)
	}
}

// Wrong password and unknown email must be indistinguishable to the caller.
func TestVerifyFailuresShareOneError(t *testing.T) {
	creds := setupCredentials(t)

	if _, err := creds.Register("Alice", "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPass := creds.Verify("alice@example.com", "wrong")
	_, unknownEmail := creds.Verify("nobody@example.com", "s3cret")

	if !errors.Is(wrongPass, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", wrongPass)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", unknownEmail)
	}
	if wrongPass.Error() != unknownEmail.Error() {
		t.Errorf("error messages differ: %q vs %q", wrongPass, unknownEmail)
	}
}

func TestGetByID(t *testing.T) {
	creds := setupCredentials(t)

	user, err := creds.Register("Alice", "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := creds.GetByID(user.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("email = %q, want %q", got.Email, "alice@example.com")
	}

	// The profile must never serialize the hash.
	data, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), got.PasswordHash) {
		t.Error("password hash leaked into JSON profile")
	}

	if _, err := creds.GetByID(999); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestHashPasswordRoundtrip(t *testing.T) {
	hash, err := HashPassword("hunter2", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword(hash, "hunter2") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "hunter3") {
		t.Error("wrong password accepted")
	}
}
