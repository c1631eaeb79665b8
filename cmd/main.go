package main

import (
	"fmt"
	"os"

	"github.com/smartcontractkit/calldata/cmd/calldata"
)

func main() {
	rootCmd := calldata.BuildCalldataCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
