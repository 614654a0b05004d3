// Package utility - Test session cache với TTL theo entry.
package utility

import (
	"testing"
	"time"
)

func TestCache_SetGetDelete(t *testing.T) {
	cache := NewCache(time.Minute, time.Minute)
	defer cache.Stop()

	if _, ok := cache.Get("missing"); ok {
		t.Error("key chưa set không được tồn tại")
	}

	cache.Set("k1", "v1")
	v, ok := cache.Get("k1")
	if !ok || v.(string) != "v1" {
		t.Errorf("Get sau Set phải trả về v1, nhận được %v (ok=%v)", v, ok)
	}

	cache.Delete("k1")
	if _, ok := cache.Get("k1"); ok {
		t.Error("key đã Delete không được tồn tại")
	}
}

func TestCache_EntryExpires(t *testing.T) {
	cache := NewCache(20*time.Millisecond, time.Minute)
	defer cache.Stop()

	cache.Set("k1", "v1")
	if _, ok := cache.Get("k1"); !ok {
		t.Fatal("entry vừa set phải còn sống")
	}

	time.Sleep(40 * time.Millisecond)
	if _, ok := cache.Get("k1"); ok {
		t.Error("entry quá TTL phải được coi như không tồn tại")
	}
}

func TestCache_SetRefreshesTTL(t *testing.T) {
	cache := NewCache(50*time.Millisecond, time.Minute)
	defer cache.Stop()

	cache.Set("k1", "v1")
	time.Sleep(30 * time.Millisecond)
	cache.Set("k1", "v2") // Set lại phải gia hạn TTL
	time.Sleep(30 * time.Millisecond)

	v, ok := cache.Get("k1")
	if !ok || v.(string) != "v2" {
		t.Errorf("Set lại phải gia hạn TTL và giữ giá trị mới, nhận được %v (ok=%v)", v, ok)
	}
}
