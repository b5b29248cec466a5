package resource

import (
	"sync"
	"testing"

	"github.com/wippyai/wasm-base64/errors"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnResourceEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

type dropCounter struct{ n *int }

func (d dropCounter) Drop() { *d.n++ }

func TestTable_InsertGetRemove(t *testing.T) {
	table := NewTable()

	h := table.Insert(KindConfig, "cfg")
	if h == 0 {
		t.Fatal("expected non-zero handle")
	}

	v, k, ok := table.Get(h)
	if !ok || v != "cfg" || k != KindConfig {
		t.Fatalf("Get = %v, %v, %v", v, k, ok)
	}

	if _, ok := table.Remove(h); !ok {
		t.Fatal("Remove failed")
	}
	if _, _, ok := table.Get(h); ok {
		t.Fatal("Get after Remove should fail")
	}
	if _, ok := table.Remove(h); ok {
		t.Fatal("double Remove should fail")
	}
	if table.Len() != 0 {
		t.Fatalf("Len = %d, want 0", table.Len())
	}
}

func TestTable_ZeroAndUnknownHandles(t *testing.T) {
	table := NewTable()
	table.Insert(KindEngine, 1)

	for _, h := range []Handle{0, 2, 1000} {
		if _, _, ok := table.Get(h); ok {
			t.Errorf("Get(%d) should fail", h)
		}
	}
}

func TestTable_HandleReuse(t *testing.T) {
	table := NewTable()
	h1 := table.Insert(KindEngine, "a")
	h2 := table.Insert(KindEngine, "b")
	table.Remove(h1)

	h3 := table.Insert(KindAlphabet, "c")
	if h3 != h1 {
		t.Errorf("expected recycled handle %d, got %d", h1, h3)
	}
	if table.Len() != 2 {
		t.Errorf("Len = %d, want 2", table.Len())
	}
	if v, _, _ := table.Get(h2); v != "b" {
		t.Errorf("h2 = %v, want b", v)
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable()
	rec := &recorder{}
	table.Subscribe(rec)

	h := table.Insert(KindUnwind, "boom")
	table.Remove(h)

	if len(rec.events) != 2 {
		t.Fatalf("got %d events, want 2", len(rec.events))
	}
	if rec.events[0].Type != EventCreated || rec.events[0].Handle != h || rec.events[0].Kind != KindUnwind {
		t.Errorf("unexpected create event %+v", rec.events[0])
	}
	if rec.events[1].Type != EventDropped || rec.events[1].Value != "boom" {
		t.Errorf("unexpected drop event %+v", rec.events[1])
	}
}

func TestTable_CloseDropsEverything(t *testing.T) {
	table := NewTable()
	var drops int
	table.Insert(KindEngine, dropCounter{&drops})
	table.Insert(KindConfig, dropCounter{&drops})

	if err := table.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if drops != 2 {
		t.Errorf("drops = %d, want 2", drops)
	}
	if table.Len() != 0 {
		t.Errorf("Len = %d, want 0", table.Len())
	}
	if h := table.Insert(KindEngine, "late"); h != 0 {
		t.Errorf("Insert after Close returned %d", h)
	}
	if err := table.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestLookup(t *testing.T) {
	table := NewTable()
	h := table.Insert(KindAlphabet, "abc")

	s, err := Lookup[string](table, h, KindAlphabet)
	if err != nil || s != "abc" {
		t.Fatalf("Lookup = %q, %v", s, err)
	}

	tests := []struct {
		name string
		h    Handle
		kind Kind
	}{
		{"wrong kind", h, KindEngine},
		{"zero", 0, KindAlphabet},
		{"unknown", 42, KindAlphabet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lookup[string](table, tt.h, tt.kind)
			if errors.KindOf(err) != errors.KindInvalidHandle {
				t.Errorf("expected invalid_handle, got %v", err)
			}
		})
	}

	if _, err := Lookup[int](table, h, KindAlphabet); errors.KindOf(err) != errors.KindInvalidHandle {
		t.Errorf("wrong Go type: expected invalid_handle, got %v", err)
	}
}

func TestTake(t *testing.T) {
	table := NewTable()
	h := table.Insert(KindUnwind, "payload")

	v, err := Take[string](table, h, KindUnwind)
	if err != nil || v != "payload" {
		t.Fatalf("Take = %q, %v", v, err)
	}
	if _, err := Take[string](table, h, KindUnwind); err == nil {
		t.Fatal("second Take should fail")
	}
}

func TestTable_Concurrent(t *testing.T) {
	table := NewTable()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h := table.Insert(KindEngine, i*1000+j)
				if v, _, ok := table.Get(h); !ok || v != i*1000+j {
					t.Errorf("Get(%d) = %v, %v", h, v, ok)
					return
				}
				table.Remove(h)
			}
		}(i)
	}
	wg.Wait()

	if table.Len() != 0 {
		t.Errorf("Len = %d, want 0", table.Len())
	}
}
