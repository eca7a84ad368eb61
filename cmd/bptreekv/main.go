/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/ssargent/bptreekv/cmd/bptreekv/cmd"
)

func main() {
	cmd.Execute()
}
