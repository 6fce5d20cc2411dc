// Package maintenance serves a maintenance page in front of an HTTP site.
//
// A Gate wraps the site's handler. While maintenance is enabled, visitors
// see a page rendered from one of the built-in templates (simple, countdown,
// construction) or from custom template content, or are redirected to a
// site path. Asset paths and configured prefixes are always served.
//
// # Bypass
//
// Requesting any page with the override parameter (default "?bypass") sets a
// cookie that lets the visitor through, then redirects with a verification
// token so CDNs that strip cookies still pass the visitor on. "?reset" clears
// the cookie again.
//
// # Configuration
//
// Options load from YAML, TOML or JSON and may be overridden with
// MAINTENANCE_* environment variables:
//
//	opts, err := maintenance.LoadOptions("maintenance.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := opts.ApplyEnv(os.LookupEnv); err != nil {
//	    return err
//	}
//	gate := maintenance.NewGate(opts, nil, logger)
//	http.ListenAndServe(":8080", gate.Middleware(site))
//
// A Watcher reloads the options file on change and can feed Gate.SetOptions.
package maintenance
