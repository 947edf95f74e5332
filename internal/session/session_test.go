package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/HerodesVe/fsr-go/internal/models"
)

func mintToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestSetPersistsAndOpenRehydrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sess := Session{
		AccessToken:  mintToken(t, time.Hour),
		RefreshToken: "refresh",
		User:         models.User{ID: "u1", Username: "admin", Role: "admin"},
	}
	if err := st.Set(sess); err != nil {
		t.Fatalf("set: %v", err)
	}

	st2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	cur := st2.Current()
	if cur == nil {
		t.Fatal("rehydrated store must carry the session")
	}
	if cur.User.Username != "admin" || cur.RefreshToken != "refresh" {
		t.Fatalf("unexpected session %+v", cur)
	}
	if st2.AccessToken() != sess.AccessToken {
		t.Fatal("token source must serve the stored token")
	}
}

func TestOpenDiscardsExpiredToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	st, _ := Open(path)
	st.Set(Session{AccessToken: mintToken(t, -time.Minute)})

	st2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if st2.Current() != nil {
		t.Fatal("expired session must be discarded on open")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expired session file must be removed")
	}
}

func TestOpenDiscardsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if st.Current() != nil {
		t.Fatal("malformed file must yield an empty store")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("malformed session file must be removed")
	}
}

func TestAccessTokenExpiresInPlace(t *testing.T) {
	st, _ := Open("")
	st.Set(Session{AccessToken: mintToken(t, 50*time.Millisecond)})
	if st.AccessToken() == "" {
		t.Fatal("token must be served while alive")
	}
	time.Sleep(80 * time.Millisecond)
	if st.AccessToken() != "" {
		t.Fatal("expired token must not be served")
	}
	if st.Current() != nil {
		t.Fatal("session must be dropped once the token expires")
	}
}

func TestClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	st, _ := Open(path)
	st.Set(Session{AccessToken: mintToken(t, time.Hour)})
	st.Clear()
	if st.Current() != nil {
		t.Fatal("clear must drop the session")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("clear must remove the persisted file")
	}
	if st.AccessToken() != "" {
		t.Fatal("cleared store must serve no token")
	}
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if st.Current() != nil {
		t.Fatal("missing file must yield an empty store")
	}
}
