// Command sie-diff compares two SIE exports of the same books, for
// checking that a vendor migration preserved the data. It parses both
// files and prints a unified diff of their ledger snapshots.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	godiffpatch "github.com/sourcegraph/go-diff-patch"

	"bokslut.dev/sie"
)

func main() {
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <a.se> <b.se>\n", os.Args[0])
		os.Exit(2)
	}

	a := snapshotJSON(flag.Arg(0))
	b := snapshotJSON(flag.Arg(1))

	patch := godiffpatch.GeneratePatch(flag.Arg(1), a, b)
	if patch == "" {
		return
	}
	fmt.Print(patch)
	os.Exit(1)
}

func snapshotJSON(path string) string {
	fd, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer fd.Close()

	ledger, err := sie.Parse(fd)
	if err != nil {
		log.Fatalf("%s: %v", path, err)
	}
	bs, err := ledger.Snapshot().MarshalIndentJSON()
	if err != nil {
		log.Fatal(err)
	}
	return string(bs) + "\n"
}
