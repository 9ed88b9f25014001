package platform

import (
	"testing"
	"time"
)

func TestOptionsTimeoutDefault(t *testing.T) {
	if got := (Options{}).timeout(); got != DefaultTimeout {
		t.Fatalf("timeout = %v, want %v", got, DefaultTimeout)
	}
	if got := (Options{Timeout: time.Second}).timeout(); got != time.Second {
		t.Fatalf("timeout = %v, want 1s", got)
	}
}
