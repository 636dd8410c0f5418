package tools

func HandlePanic(err error) {
	if err == nil {
		return
	}
	panic(err)
}
