package main

import "github.com/naka-gawa/check-versions/cmd"

func main() {
	cmd.Execute()
}
