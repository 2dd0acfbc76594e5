// Package theme owns the persisted theme configuration and projects it onto
// a rendering surface.
//
// A single Store is created at bootstrap and shared by every consumer:
//
//	doc := theme.NewDocument()
//	store := theme.NewStore(backend, logger, theme.WithBinder(theme.NewBinder(doc, logger)))
//	store.Init()
//	_ = store.SubscribeFunc("ui", func(change theme.Change) { redraw(change.Current) })
//	store.ToggleMode()
//
// Store operations never fail because of storage problems: unreadable or
// corrupt values fall back to models.DefaultThemeConfig and failed writes are
// logged while the binder still applies the new configuration.
package theme
