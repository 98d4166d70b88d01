// Package model describes the shape an action object is built from.
//
// A Model is registered once, at setup, as a tree of named members. Each member
// carries an explicit Kind:
//
//   - data members (plain values, lists and opaque containers) become the initial state,
//   - handler members become actions that compute a partial state update,
//   - creator members supply their own action creator,
//   - sub members nest another Model under a dotted Path.
//
// A Model may extend a base Model. Members of the base chain are merged into the
// same namespace as the model's own members, and a member declared closer to
// the extending model wins on a name collision.
//
// Handlers receive an explicit *Context instead of an implicit receiver: the
// current State, sibling handlers (Context.Call) and the side-effect sink
// (Context.SideEffect) are all reached through it.
//
// Example:
//
//	counter := model.New().
//	    Set("count", 0).
//	    Action("inc", func(c *model.Context, _ ...any) model.Update {
//	        n, _ := model.Value[int](c, "count")
//	        return model.Update{"count": n + 1}
//	    })
package model
