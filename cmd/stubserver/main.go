// stubserver is a local stand-in for the execution backend. It implements
// the same HTTP surface the bot talks to and completes every execution after
// a fixed delay by echoing the goal, which is enough for developing and
// demoing the bot without the real backend.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"relay/tools"
)

func main() {
	addr := flag.String("addr", ":8000", "Address to listen on")
	delay := flag.Duration("delay", 2*time.Second, "Simulated execution time")
	help := flag.Bool("help", false, "Print help")
	flag.Parse()

	if *help {
		tools.Printfln("Usage: %s", os.Args[0])
		flag.PrintDefaults()
		return
	}

	c := &connection{
		executions: tools.CreateMutexed(map[string]*execution{}),
		logger: log.New(
			os.Stderr,
			"stubserver: ",
			log.LstdFlags|log.LUTC|log.Lmsgprefix|log.Lmicroseconds,
		),
		delay: *delay,
	}

	c.logger.Printf("stub backend listening on %s", *addr)
	tools.HandlePanic(http.ListenAndServe(*addr, c.newRouter()))
}
