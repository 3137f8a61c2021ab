// Command regexnfa compiles regular expressions into nondeterministic finite
// automata with Thompson's construction and runs inputs against them.
package main

import "os"

func main() {
	os.Exit(newRootCommand(os.Stdout, os.Stderr, os.LookupEnv).execute(os.Args[1:]))
}
