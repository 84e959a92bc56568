package mongo

// reset drops all package state without disconnecting. Test helper only,
// so the same process can run Init again from scratch.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	client = nil
	db = nil
	initErr = nil
}
