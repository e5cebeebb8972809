package utils

import (
	"context"
	"errors"
	"testing"
)

func TestInitOnce_RetriesUntilSuccess(t *testing.T) {
	var o InitOnce
	calls := 0
	fn := func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("db not ready")
		}
		return nil
	}

	if err := o.Do(context.Background(), fn); err == nil {
		t.Fatalf("expected first attempt to fail")
	}
	if o.Done() {
		t.Fatalf("expected not done after failure")
	}
	if err := o.Do(context.Background(), fn); err != nil {
		t.Fatalf("expected second attempt to succeed, got %v", err)
	}
	if err := o.Do(context.Background(), fn); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
	if !o.Done() {
		t.Fatalf("expected done")
	}
}
