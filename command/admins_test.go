package command

import "testing"

func TestAdminSetCaseInsensitive(t *testing.T) {
	t.Parallel()

	admins := NewAdminSet([]string{"admin", " Admin1 "})

	for _, nick := range []string{"admin", "Admin", "ADMIN", "admin1", "ADMIN1"} {
		if !admins.IsAdmin(nick) {
			t.Fatalf("IsAdmin(%q) = false, want true", nick)
		}
	}
	for _, nick := range []string{"guest", "", "admin2"} {
		if admins.IsAdmin(nick) {
			t.Fatalf("IsAdmin(%q) = true, want false", nick)
		}
	}
}

func TestAdminSetNil(t *testing.T) {
	t.Parallel()

	var admins *AdminSet
	if admins.IsAdmin("admin") {
		t.Fatal("nil AdminSet should deny everyone")
	}
}
