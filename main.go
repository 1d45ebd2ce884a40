package main

import "github.com/alexiusacademia/goflow/cmd"

func main() {
	cmd.Execute()
}
