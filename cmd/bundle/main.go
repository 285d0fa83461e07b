package main

import (
	"flag"
	"fmt"
	"log"

	"labelscan/internal/service/bundle"
)

// bundle packs a directory of model files into a single archive, or
// restores such an archive back into a directory:
//
//	bundle -mode save -dir my_model_directory -archive model.bundle
//	bundle -mode load -dir restored_model -archive model.bundle
func main() {
	mode := flag.String("mode", "save", "save or load")
	dir := flag.String("dir", "my_model_directory", "model directory to pack or restore into")
	archive := flag.String("archive", "model.bundle", "archive file")
	flag.Parse()

	switch *mode {
	case "save":
		count, err := bundle.Pack(*dir, *archive)
		if err != nil {
			log.Fatalf("Failed to pack model files: %v", err)
		}
		fmt.Printf("Saved %d files into %s\n", count, *archive)
	case "load":
		count, err := bundle.Unpack(*archive, *dir)
		if err != nil {
			log.Fatalf("Failed to restore model files: %v", err)
		}
		fmt.Printf("Restored %d files to %s\n", count, *dir)
	default:
		log.Fatalf("Unknown mode %q (want save or load)", *mode)
	}
}
