package main

import "github.com/liyang960414/erp/cmd/erpctl/cmd"

func main() {
	cmd.Execute()
}
