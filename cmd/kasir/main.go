package main

import "github.com/diewo77/warung-ledger/cmd/kasir/commands"

func main() {
	commands.Execute()
}
