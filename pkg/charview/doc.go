// Package charview provides an embeddable character browser core.
//
// A [Viewer] fetches characters from a REST API and publishes the results
// into observable cells that a presentation layer subscribes to. It can be
// used through the charview CLI or embedded as a library in other Go programs.
//
// # Basic Usage
//
//	v, err := charview.New(charview.Config{APIURL: "https://dragonball-api.com/api"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer v.Close()
//
//	stop := v.Characters().Observe(func(p domain.Page) {
//	    fmt.Println(len(p.Items), "characters")
//	})
//	defer stop()
//
//	v.LoadAll(ctx)
//
// # Published State
//
// [Viewer.Characters] holds the last successfully loaded page and
// [Viewer.Error] the text of the last failure, as "Error: <code> <reason>"
// or "Error: <message>". [Viewer.LoadOne] returns a fresh cell per call that
// only receives the character on success.
//
// [Viewer.ListState] and [Viewer.LoadOneState] publish explicit
// Loading/Success/Failure values instead, and [Viewer.FetchAll] and
// [Viewer.FetchOne] return results directly to the caller.
//
// # Event Handling
//
// To receive notifications about fetches, implement [EventHandler] and pass
// it via [WithEventHandler]. Events are called synchronously from the fetch
// goroutine. Implementations should return quickly.
//
// # Dependency Injection
//
// For testing, you can inject custom implementations of external dependencies:
//
//	v, err := charview.New(cfg,
//	    charview.WithHTTPClient(mockClient),
//	    charview.WithLogger(customLogger),
//	)
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package charview
