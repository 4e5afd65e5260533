package main

import "github.com/mvp-joe/graphovl/internal/cli"

func main() {
	cli.Execute()
}
