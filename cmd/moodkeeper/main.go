package main

import "github.com/dmitrijs2005/moodkeeper/internal/cli"

func main() {
	cli.Execute()
}
