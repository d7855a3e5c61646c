// Command calceval evaluates calculator expressions from arguments or stdin
// and prints what the calculator display would show.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"sparkcalc/sparkos/calc"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run returns 1 when any expression failed and 2 on usage or I/O errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("calceval", flag.ContinueOnError)
	fs.SetOutput(stderr)
	chain := fs.Bool("chain", false, "Seed each expression with the previous result.")
	verbose := fs.Bool("v", false, "Print the failure reason for expressions that fail.")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	c := calc.New(nil)
	status := 0
	eval := func(line string) {
		if !*chain {
			c.Clear()
		}
		c.Append(strings.TrimSpace(line))
		out := c.Solve()
		fmt.Fprintln(stdout, out.Display)
		if !out.OK() {
			status = 1
			if *verbose {
				fmt.Fprintf(stderr, "%q: %v\n", out.Input, out.Err)
			}
		}
	}

	if fs.NArg() > 0 {
		for _, a := range fs.Args() {
			eval(a)
		}
		return status
	}

	sc := bufio.NewScanner(stdin)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		eval(sc.Text())
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(stderr, "reading stdin: %v\n", err)
		return 2
	}
	return status
}
