// Package resource holds host objects that a guest refers to by handle.
//
// A guest never sees Go pointers. Alphabets, configs, engines and unwind
// tokens created on its behalf are stored in a Table and the guest gets a
// Handle back. Handles are small positive integers; 0 is never issued.
// Dropped handles are recycled.
//
//	table := resource.NewTable()
//	h := table.Insert(resource.KindEngine, eng)
//
//	eng, err := resource.Lookup[*codec.Engine](table, h, resource.KindEngine)
//	table.Remove(h)
//
// Lookup and Take check the kind tag, so an alphabet handle passed where an
// engine is expected fails with an invalid_handle error instead of a type panic.
//
// Observers see every create and drop and are used for debug logging:
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) { ... }))
//
// Close drops everything still live. A Table belongs to one guest instance.
package resource
