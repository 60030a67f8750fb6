package util

// AsyncNotify performs a non-blocking send on a notification channel.
func AsyncNotify(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
