package tools

import "fmt"

func Printfln(format string, a ...any) {
	fmt.Printf(format+"\n", a...)
}
