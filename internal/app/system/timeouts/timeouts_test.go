package timeouts

import (
	"testing"
	"time"
)

func TestConfigureFromEnv_AppliesOnlyValidOverrides(t *testing.T) {
	mu.Lock()
	saved := tiers
	mu.Unlock()
	defer func() {
		mu.Lock()
		tiers = saved
		mu.Unlock()
	}()

	t.Setenv("TIMEOUT_SHORT", "8s")
	t.Setenv("TIMEOUT_MEDIUM", "not-a-duration")
	t.Setenv("TIMEOUT_LONG", "-5s")

	if n := ConfigureFromEnv(); n != 1 {
		t.Errorf("ConfigureFromEnv() = %d overrides, want 1", n)
	}
	if Short() != 8*time.Second {
		t.Errorf("Short() = %s, want 8s", Short())
	}
	if Medium() != 10*time.Second {
		t.Errorf("malformed override changed Medium() to %s", Medium())
	}
	if Long() != 30*time.Second {
		t.Errorf("non-positive override changed Long() to %s", Long())
	}
}
