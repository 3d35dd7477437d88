// goldrec builds a scored golden-record customer mart from raw
// landing batches.
package main

import "github.com/goldrec/goldrec/cmd"

func main() {
	cmd.Execute()
}
