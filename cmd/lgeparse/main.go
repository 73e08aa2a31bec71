/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/lgeparse/cmd/lgeparse/cmd"

func main() {
	cmd.Execute()
}
