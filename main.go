package main

import "github.com/migratehq/depscope/cmd"

func main() {
	cmd.Execute()
}
