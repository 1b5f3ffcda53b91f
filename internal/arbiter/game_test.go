package arbiter

import "testing"

func TestValidate_RejectsTooSmallBoard(t *testing.T) {
	cfg := Config{Width: 5, Height: 20, PlayerPaths: []string{"a"}}
	if err := validate(cfg); err == nil {
		t.Error("validate accepted a board narrower than MinDimension")
	}
}

func TestValidate_RejectsTooManyPlayers(t *testing.T) {
	paths := make([]string, MaxPlayerCount+1)
	for i := range paths {
		paths[i] = "p"
	}
	cfg := Config{Width: 20, Height: 20, PlayerPaths: paths}
	if err := validate(cfg); err == nil {
		t.Error("validate accepted more than MaxPlayerCount players")
	}
}

func TestValidate_RejectsNoPlayers(t *testing.T) {
	cfg := Config{Width: 20, Height: 20, PlayerPaths: nil}
	if err := validate(cfg); err == nil {
		t.Error("validate accepted zero players")
	}
}

func TestValidate_AcceptsMinimalValidConfig(t *testing.T) {
	cfg := Config{Width: MinDimension, Height: MinDimension, PlayerPaths: []string{"a"}}
	if err := validate(cfg); err != nil {
		t.Errorf("validate rejected a minimal valid config: %v", err)
	}
}
