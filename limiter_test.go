package mindtile

import (
	"fmt"
	"testing"
	"time"
)

func TestLoginLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewLoginLimiter(3, 250*time.Millisecond)
	ip := "198.51.100.7"

	for i := 0; i < 3; i++ {
		if !limiter.Allow(ip) {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if limiter.Allow(ip) {
		t.Fatal("attempt over the limit should be blocked")
	}
	if limiter.Allow(ip) {
		t.Fatal("blocked attempts must not reset the window")
	}
}

func TestLoginLimiterWindowExpires(t *testing.T) {
	limiter := NewLoginLimiter(1, 100*time.Millisecond)
	ip := "198.51.100.8"

	limiter.Allow(ip)
	if limiter.Allow(ip) {
		t.Fatal("second attempt inside the window should be blocked")
	}

	time.Sleep(150 * time.Millisecond)
	if !limiter.Allow(ip) {
		t.Fatal("attempt after the window expired should be allowed")
	}
}

func TestLoginLimiterTracksIPsIndependently(t *testing.T) {
	limiter := NewLoginLimiter(1, time.Second)

	for i := 0; i < 5; i++ {
		ip := fmt.Sprintf("198.51.100.%d", 10+i)
		if !limiter.Allow(ip) {
			t.Fatalf("first attempt from %s should be allowed", ip)
		}
	}
	if limiter.Allow("198.51.100.10") {
		t.Fatal("repeat attempt from an exhausted ip should be blocked")
	}
}
