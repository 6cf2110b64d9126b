package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	e := NoopEditorHooks{}
	e.OnMutation("insert", "c1", nil)
	e.OnHistory("undo", 1, 3)

	r := NoopRenderHooks{}
	r.OnRenderComplete("edit", 5, 1, time.Millisecond)
	r.OnComponentError("carousel3d", "c2", errors.New("unknown"))

	s := NoopStoreHooks{}
	s.OnLoad(ctx, "w1", time.Second, nil)
	s.OnSave(ctx, "w1", time.Second, errors.New("offline"))

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "page")
	c.OnCacheMiss(ctx, "page")
	c.OnCacheSet(ctx, "page", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Editor().(NoopEditorHooks); !ok {
		t.Error("Editor() should return NoopEditorHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	editor := &testEditorHooks{}
	SetEditorHooks(editor)
	if Editor() != editor {
		t.Error("SetEditorHooks should set custom hooks")
	}
	render := &testRenderHooks{}
	SetRenderHooks(render)
	if Render() != render {
		t.Error("SetRenderHooks should set custom hooks")
	}
	store := &testStoreHooks{}
	SetStoreHooks(store)
	if Store() != store {
		t.Error("SetStoreHooks should set custom hooks")
	}
	cache := &testCacheHooks{}
	SetCacheHooks(cache)
	if Cache() != cache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// nil is ignored
	SetEditorHooks(nil)
	if Editor() != editor {
		t.Error("SetEditorHooks(nil) should keep existing hooks")
	}

	Reset()
	if _, ok := Editor().(NoopEditorHooks); !ok {
		t.Error("Reset should restore NoopEditorHooks")
	}
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testEditorHooks{}
	SetEditorHooks(h)
	Editor().OnMutation("remove", "c9", nil)
	Editor().OnMutation("remove", "missing", errors.New("not found"))

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.ops) != 2 || h.ops[0] != "remove:c9" {
		t.Errorf("ops = %v", h.ops)
	}
	if h.failed != 1 {
		t.Errorf("failed = %d, want 1", h.failed)
	}
}

type testEditorHooks struct {
	mu     sync.Mutex
	ops    []string
	failed int
}

func (h *testEditorHooks) OnMutation(op, id string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ops = append(h.ops, op+":"+id)
	if err != nil {
		h.failed++
	}
}
func (h *testEditorHooks) OnHistory(string, int, int) {}

type testRenderHooks struct{ NoopRenderHooks }
type testStoreHooks struct{ NoopStoreHooks }
type testCacheHooks struct{ NoopCacheHooks }
