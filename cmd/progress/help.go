// ABOUTME: Help display for the progress CLI with commands, global flags, examples, and environment status.
// ABOUTME: Provides printHelp for usage output and envStatus for showing which settings are present.
package main

import (
	"fmt"
	"io"
	"os"
)

// printHelp writes a formatted help message to w.
func printHelp(w io.Writer, ver string) {
	fmt.Fprintf(w, "progress %s: kanban boards in plain files\n", ver)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  progress [global flags] <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "BOARD is a board file path or the ULID of a board in the library.")
	fmt.Fprintln(w, "LIST and CARD are a ULID or a name (first match wins).")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Library:")
	fmt.Fprintln(w, "  new [-file PATH] NAME           Create a board in the library (or at PATH)")
	fmt.Fprintln(w, "  boards                          List library boards")
	fmt.Fprintln(w, "  delete ID                       Delete a library board")
	fmt.Fprintln(w, "  search QUERY                    Search card names and descriptions")
	fmt.Fprintln(w, "  reindex                         Rebuild the search index from board files")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Editing:")
	fmt.Fprintln(w, "  show BOARD                      Print lists and cards with their IDs")
	fmt.Fprintln(w, "  add-list [-after LIST | -head] BOARD NAME")
	fmt.Fprintln(w, "  add-card [-after CARD | -head] [-description TEXT] [-labels a,b] BOARD LIST NAME")
	fmt.Fprintln(w, "  move-card [-after CARD] BOARD CARD LIST")
	fmt.Fprintln(w, "  remove-card BOARD CARD")
	fmt.Fprintln(w, "  remove-list BOARD LIST")
	fmt.Fprintln(w, "  rename [-list LIST | -card CARD] BOARD NAME")
	fmt.Fprintln(w, "  background BOARD colour|file VALUE")
	fmt.Fprintln(w, "  edit BOARD                      Open the interactive board editor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Files:")
	fmt.Fprintln(w, "  export [-format markdown|html|dot|svg|png|yaml|json|xml] [-o FILE] BOARD")
	fmt.Fprintln(w, "  convert [-format yaml|json|xml] IN OUT")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Global Flags:")
	fmt.Fprintln(w, "  -data-dir <dir>       Board library directory (default: $XDG_DATA_HOME/progress)")
	fmt.Fprintln(w, "  -verbose              Log library activity to stderr")
	fmt.Fprintln(w, "  -version              Print version and exit")
	fmt.Fprintln(w, "  -help                 Show this help")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  progress new Roadmap")
	fmt.Fprintln(w, "  progress new -file roadmap.yaml Roadmap")
	fmt.Fprintln(w, "  progress add-list roadmap.yaml Todo")
	fmt.Fprintln(w, "  progress add-card -labels ux,p1 roadmap.yaml Todo \"Fix login\"")
	fmt.Fprintln(w, "  progress move-card roadmap.yaml \"Fix login\" Doing")
	fmt.Fprintln(w, "  progress export -format html -o roadmap.html roadmap.yaml")
	fmt.Fprintln(w, "  progress convert board.xml board.yaml")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %-21s %s\n", dataDirEnv, envStatus(dataDirEnv))
	fmt.Fprintf(w, "  %-21s %s\n", "XDG_DATA_HOME", envStatus("XDG_DATA_HOME"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  .env files in the working directory and its parents are loaded first.")
}

// envStatus returns "[set]" if the named environment variable is non-empty,
// or "[not set]" otherwise.
func envStatus(key string) string {
	if os.Getenv(key) != "" {
		return "[set]"
	}
	return "[not set]"
}
