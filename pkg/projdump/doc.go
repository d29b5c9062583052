// Package projdump gathers every text file of a directory tree into one
// Markdown document.
//
// It can be used as a standalone CLI application (cmd/projdump) or embedded
// as a library in other Go programs.
//
// # Basic Usage
//
//	cfg := projdump.DefaultConfig()
//	cfg.Root = "/path/to/project"
//
//	d, err := projdump.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stats, err := d.Dump()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d files gathered into %s\n", stats.Written, d.OutputPath())
//
// # Output Format
//
// Every file that decodes as UTF-8 becomes one section, in traversal order:
//
//	## relative/path
//
//	```
//	content without trailing newlines
//	```
//
// Directories named in [Config.IgnoreDirs] are never entered, files that are
// not valid UTF-8 are left out, and the output document never lists itself.
//
// # Watching
//
// [Dumper.Watch] regenerates the whole document after every burst of file
// system changes until its context is cancelled. Register an [EventHandler]
// with [WithEventHandler] to hear about each run.
//
// # Checking
//
// [Dumper.Check] renders the document in memory and reports a line diff
// against the file on disk, returning [ErrDrift] when they differ.
package projdump
