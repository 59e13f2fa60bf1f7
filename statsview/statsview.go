// Package statsview serves charts of the Go runtime statistics (heap, GC,
// goroutines) of the running interpreter.
package statsview

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

const url = "/debug/statsview"

// Launch a new goroutine running the statsview. The returned function stops
// it.
func Launch(addr string, logger *log.Logger) (stop func()) {
	viewer.SetConfiguration(viewer.WithAddr(addr))
	mgr := statsview.New()

	go func() {
		mgr.Start()
	}()

	logger.Info("stats server available", log.String("url", "http://"+addr+url))

	return mgr.Stop
}
