// Command depsolve runs the CNF SAT dependency solver against a
// scenario file.
package main

import "depsolve/internal/cli"

func main() {
	cli.Execute()
}
