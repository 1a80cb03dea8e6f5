package main

import (
	"flag"
	"log"

	"sheetdiff/internal/testkit"
)

// Writes a deterministic old/new sample workbook pair, one overview sheet
// each, with drifted metrics plus one added and one removed drug row.
func main() {
	dir := flag.String("dir", "sample_data", "output directory")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	kit := testkit.NewTestKit(*seed)
	oldPath, newPath, err := kit.WriteSampleWorkbooks(*dir)
	if err != nil {
		log.Fatalf("failed to write sample workbooks: %v", err)
	}
	log.Printf("wrote %s and %s", oldPath, newPath)
}
