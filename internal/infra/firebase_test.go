// README: Tests for token claim accessors.
package infra

import "testing"

func TestFirebaseTokenClaims(t *testing.T) {
	admin := &FirebaseToken{
		UID:    "adm1",
		Claims: map[string]interface{}{"role": "admin", "email": "admin@example.com"},
	}
	if admin.Role() != "admin" {
		t.Errorf("Role() = %q, want admin", admin.Role())
	}
	if admin.Email() != "admin@example.com" {
		t.Errorf("Email() = %q, want admin@example.com", admin.Email())
	}

	// Customers carry no claims; accessors fall back to "".
	customer := &FirebaseToken{UID: "u1", Claims: map[string]interface{}{}}
	if customer.Role() != "" || customer.Email() != "" {
		t.Errorf("expected empty claims, got role=%q email=%q", customer.Role(), customer.Email())
	}

	// Non-string claim values are ignored rather than panicking.
	odd := &FirebaseToken{UID: "u2", Claims: map[string]interface{}{"role": 7}}
	if odd.Role() != "" {
		t.Errorf("expected empty role for non-string claim, got %q", odd.Role())
	}
}
