package util

import (
	"log"
	"time"
)

// Retry runs operation up to attempts times with a fixed delay between
// failures. No backoff: the startup connection contract is a bounded number
// of evenly spaced attempts.
func Retry[T any](attempts int, delay time.Duration, operation func() (T, error)) (T, error) {
	var result T
	var err error

	for i := 0; i < attempts; i++ {
		result, err = operation()
		if err == nil {
			return result, nil
		}

		if i < attempts-1 {
			log.Printf("attempt %d/%d failed: %v, retrying in %v...", i+1, attempts, err, delay)
			time.Sleep(delay)
		}
	}

	return result, err
}
