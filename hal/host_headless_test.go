package hal

import (
	"context"
	"testing"
	"time"
)

func TestRunHeadlessClampsHzAndStops(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := RunHeadless(ctx, func(HAL) func() error { return nil }, HeadlessConfig{Hz: 0, Ticks: 1})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
}
