// Command sgi is a thin CLI collaborator (spec.md §2/§6): it reads an
// OBJ-derived wireframe file, reports a summary, and optionally writes it
// back out, exercising objio without any window-toolkit dependency.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/galvanized-sgi/sgi/objio"
)

func main() {
	in := flag.String("i", "", "input OBJ-derived wireframe file")
	out := flag.String("o", "", "output path to re-write the loaded wireframes (optional)")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: sgi -i input.obj [-o output.obj]")
		os.Exit(2)
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("sgi: %v", err)
	}
	defer f.Close()

	wireframes, err := objio.Read(f)
	if err != nil {
		log.Fatalf("sgi: %v", err)
	}
	fmt.Printf("loaded %d wireframe(s) from %s\n", len(wireframes), *in)
	for _, w := range wireframes {
		fmt.Printf("  %q: %d vertices, %d edges, %d faces, %d curves, %d surfaces\n",
			w.Name, len(w.Vertices), len(w.Edges), len(w.Faces), len(w.Curves), len(w.Surfaces))
	}

	if *out == "" {
		return
	}
	outFile, err := os.Create(*out)
	if err != nil {
		log.Fatalf("sgi: %v", err)
	}
	defer outFile.Close()
	if err := objio.Write(outFile, wireframes); err != nil {
		log.Fatalf("sgi: %v", err)
	}
	fmt.Printf("wrote %d wireframe(s) to %s\n", len(wireframes), *out)
}
