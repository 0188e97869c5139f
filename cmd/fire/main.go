// Command fire projects how long until living expenses can be sustained from
// brokerage and super balances, and how to split contributions to get there.
//
//	fire project snapshot.yaml --format console
//	fire example > snapshot.yaml
//	fire serve --addr :8080 --redis localhost:6379
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
