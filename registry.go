package quill

import (
	"reflect"
	"sync"
)

var (
	planRegistry = make(map[reflect.Type]*memberPlan)
	planMu       sync.RWMutex
)

// plansFor returns the cached member plan for a struct type, building
// it on first use.
func plansFor(rt reflect.Type) *memberPlan {
	// Fast path: read-lock cache check
	planMu.RLock()
	if plan, ok := planRegistry[rt]; ok {
		planMu.RUnlock()
		return plan
	}
	planMu.RUnlock()

	// Slow path: build and cache with write-lock
	planMu.Lock()
	defer planMu.Unlock()

	// Double-check pattern
	if plan, ok := planRegistry[rt]; ok {
		return plan
	}

	plan := buildPlan(rt)
	planRegistry[rt] = plan
	return plan
}

// Reset clears the member plan registry.
// This is primarily useful for test isolation.
func Reset() {
	planMu.Lock()
	defer planMu.Unlock()
	planRegistry = make(map[reflect.Type]*memberPlan)
}
