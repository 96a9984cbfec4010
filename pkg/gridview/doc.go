// Package gridview keeps a rendering surface in sync with a changing item
// list.
//
// # Overview
//
// A [Composer] observes four sources: the primary items, self-handling items
// with a visibility flag, the has-next pagination flag, and display
// [Settings]. Any change marks the composer pending and re-arms a short
// debounce timer (10ms by default), so a burst of mutations results in a
// single recomposition. When the timer fires, the sources are snapshotted
// together and grouped with compose.Build off the UI context. The result is
// posted to the UI [Executor], which registers new reuse keys with the
// [Surface] and applies a keyed diff against the previously applied
// sections.
//
// Each snapshot carries a generation number. A result whose generation is
// older than the latest mutation is dropped instead of applied, because a
// newer recomposition is already scheduled.
//
// # Load More
//
// Scroll metrics reported through [Composer.NotifyScroll] and the load-more
// placeholder becoming visible ([Composer.WillDisplay]) both raise the
// load-more trigger. The trigger is debounced separately (100ms by default)
// and fires [Delegate.OnLoadMoreRequested] only while load-more is enabled
// in the settings and the host reported more pages.
//
// # Binding
//
// The surface asks the composer how to configure each view with
// [Composer.Bind]. The returned [Binding] is a closed set of kinds, one per
// view kind, with a typed payload. A self-handling item whose foreign view
// is unknown binds as [BindNone] and the surface leaves the view
// unconfigured.
//
// # Threading
//
// Source mutators may be called from any goroutine. Surface calls, delegate
// callbacks and the reuse-key registry run on the UI executor. [NewLoop]
// provides a serial queue for hosts without their own main loop.
package gridview
