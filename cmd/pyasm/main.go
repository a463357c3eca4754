package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/urbancheese/py-to-asm/pkg/compiler"
)

func main() {
	output := flag.String("o", "", "Write assembly to this file instead of stdout")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: pyasm [-o out.asm] <source.py | ->")
		os.Exit(1)
	}

	var src []byte
	var err error
	if flag.Arg(0) == "-" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(flag.Arg(0))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading source: %v\n", err)
		os.Exit(1)
	}

	asm, err := compiler.Compile(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation Error: %v\n", err)
		os.Exit(1)
	}

	if *output == "" {
		fmt.Println(asm)
		return
	}
	if err := os.WriteFile(*output, []byte(asm+"\n"), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}
