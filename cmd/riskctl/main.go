package main

import "github.com/kimyuchan-1/MiniProject-sub000/internal/cli"

func main() {
	cli.Execute()
}
