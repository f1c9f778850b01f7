package auth

import (
	"testing"
	"time"

	"starmap-server/internal/commander"
	"starmap-server/internal/shared/config"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	prev := config.GlobalConfig
	config.GlobalConfig = &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-test-secret-test-secret!",
			TokenExpiration: time.Hour,
		},
	}
	t.Cleanup(func() { config.GlobalConfig = prev })
}

func TestJWTRoundTrip(t *testing.T) {
	setTestConfig(t)

	cmdr := &commander.Commander{
		ID:       7,
		Username: "ayla",
		Role:     commander.RoleAdmin,
	}
	token, err := GenerateJWT(cmdr)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT failed: %v", err)
	}
	if claims.CommanderID != 7 || claims.Username != "ayla" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	setTestConfig(t)

	if _, err := ValidateJWT("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	setTestConfig(t)

	token, err := GenerateJWT(&commander.Commander{ID: 1, Username: "x", Role: commander.RoleCommander})
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	config.GlobalConfig.Auth.JWTSecret = "another-secret-another-secret-another!"
	if _, err := ValidateJWT(token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestStateManagerSingleUse(t *testing.T) {
	sm := NewStateManager()

	state, err := sm.Generate("google")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !sm.Consume(state, "google") {
		t.Fatal("first consume must succeed")
	}
	if sm.Consume(state, "google") {
		t.Fatal("state tokens are single-use")
	}
}

func TestStateManagerProviderMismatch(t *testing.T) {
	sm := NewStateManager()

	state, err := sm.Generate("github")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if sm.Consume(state, "discord") {
		t.Fatal("state token must be bound to its provider")
	}
}
