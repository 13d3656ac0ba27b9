package main

import (
	"fmt"
	"log"

	"golang.design/x/clipboard"

	"github.com/milk9111/cinecam/definition"
)

// exporter copies the current shot's YAML to the system clipboard so a
// shot tuned in the preview can be pasted back into the scenario file.
type exporter struct {
	ready bool
}

func newExporter() *exporter {
	if err := clipboard.Init(); err != nil {
		log.Printf("preview: clipboard unavailable: %v", err)
		return &exporter{}
	}
	return &exporter{ready: true}
}

func (e *exporter) CopyShot(shot *definition.Shot) error {
	if !e.ready {
		return fmt.Errorf("clipboard unavailable")
	}
	if shot == nil {
		return fmt.Errorf("no shot playing")
	}
	out, err := definition.Marshal(&definition.Cinematic{Shots: []*definition.Shot{shot}})
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, out)
	return nil
}
