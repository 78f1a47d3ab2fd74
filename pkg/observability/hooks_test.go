package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLayoutStart(ctx, 9)
	p.OnMeasureComplete(ctx, 9, true)
	p.OnComputeComplete(ctx, 0.339)
	p.OnStart(ctx, true)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
