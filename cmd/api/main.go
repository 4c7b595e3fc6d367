package main

import (
	"fmt"
	"os"
)

// @title Baby Feed Tracker API
// @version 1.0
// @description Registro compartido de tomas, pañales y vitamina D.
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
