package calibration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	mdwerror "github.com/msto63/viscocorrect/foundation/core/error"
)

// blockingSource waits for release before returning
type blockingSource struct {
	release chan struct{}
	err     error
	panics  bool
}

func (s *blockingSource) Load(ctx context.Context) (Coefficients, error) {
	select {
	case <-s.release:
	case <-ctx.Done():
		return Coefficients{}, ctx.Err()
	}
	if s.panics {
		panic("corrupt table")
	}
	if s.err != nil {
		return Coefficients{}, s.err
	}
	return Default(), nil
}

func (s *blockingSource) Name() string { return "blocking" }

func TestNewContext_Async(t *testing.T) {
	src := &blockingSource{release: make(chan struct{})}
	c := NewContext(context.Background(), src)

	if c.IsInitialized() || c.HasError() || c.Err() != nil {
		t.Fatal("context reported a result before loading finished")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := c.WaitInitialization(ctx); err != context.DeadlineExceeded {
		t.Errorf("WaitInitialization() error = %v, want DeadlineExceeded", err)
	}

	close(src.release)
	if err := c.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if !c.IsInitialized() || c.HasError() {
		t.Errorf("IsInitialized() = %v, HasError() = %v", c.IsInitialized(), c.HasError())
	}

	got, err := c.Coefficients()
	if err != nil || got != Default() {
		t.Errorf("Coefficients() = %+v, %v", got, err)
	}
}

func TestNewContext_Failure(t *testing.T) {
	tests := []struct {
		name string
		src  *blockingSource
		code mdwerror.Code
	}{
		{"source error", &blockingSource{err: errors.New("disk on fire")}, mdwerror.CodeServiceInitialization},
		{"invalid table", &blockingSource{err: mdwerror.New("bad").WithCode(mdwerror.CodeDataCorruption)}, mdwerror.CodeDataCorruption},
		{"panic", &blockingSource{panics: true}, mdwerror.CodeServiceInitialization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.src.release = make(chan struct{})
			close(tt.src.release)

			c := NewContext(context.Background(), tt.src)
			err := c.Wait()
			if err == nil {
				t.Fatal("Wait() error = nil, want error")
			}
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("Wait() code = %v, want %v", mdwerror.GetCode(err), tt.code)
			}
			if c.IsInitialized() || !c.HasError() {
				t.Errorf("IsInitialized() = %v, HasError() = %v", c.IsInitialized(), c.HasError())
			}
			if _, err := c.Coefficients(); err == nil {
				t.Error("Coefficients() after failure should return an error")
			}
		})
	}
}

func TestNewContext_Timeout(t *testing.T) {
	src := &blockingSource{release: make(chan struct{})}
	c := NewContext(context.Background(), src, WithTimeout(5*time.Millisecond))
	err := c.Wait()
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want DeadlineExceeded", err)
	}
}

func TestNewContextSync(t *testing.T) {
	c := NewContextSync(context.Background(), nil)
	if !c.IsInitialized() {
		t.Fatalf("IsInitialized() = false, err = %v", c.Err())
	}
	if c.Source().Name() != KindBuiltin {
		t.Errorf("Source().Name() = %q, want builtin", c.Source().Name())
	}
}

func TestContext_ConcurrentWaiters(t *testing.T) {
	src := &blockingSource{release: make(chan struct{})}
	c := NewContext(context.Background(), src)

	var wg sync.WaitGroup
	results := make([]Coefficients, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.Coefficients()
		}(i)
	}
	close(src.release)
	wg.Wait()

	for i, got := range results {
		if got != Default() {
			t.Errorf("waiter %d got %+v", i, got)
		}
	}
}
