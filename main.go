package main

import "github.com/theirongolddev/budgetbook/cmd"

func main() {
	cmd.Execute()
}
