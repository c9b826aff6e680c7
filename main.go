package main

import "github.com/njyeung/pioauth/cli"

func main() {
	cli.Execute()
}
