// Command votershield extracts structured voter records from scanned
// electoral-roll PDFs: render, crop, OCR, extract, write.
package main

import (
	"github.com/ashathullah/voter-shield/cmd/votershield/cmd"
)

func main() {
	cmd.Execute()
}
