package main

import (
	"flag"
	"log"
	"os"

	"github.com/matst80/slask-property/pkg/listing"
	"github.com/matst80/slask-property/pkg/storage"
)

var input = flag.String("input", "data/properties.csv", "semicolon separated listing file")
var dataDir = "data"

func init() {
	if dir, ok := os.LookupEnv("DATA_DIR"); ok {
		dataDir = dir
	}
}

func main() {
	flag.Parse()
	properties, err := storage.ReadCsvFile(*input)
	if err != nil {
		log.Fatalf("could not read %s: %v", *input, err)
	}
	store, err := listing.NewStoreWith(properties)
	if err != nil {
		log.Fatalf("invalid listings: %v", err)
	}
	disk := storage.NewDiskStorage(dataDir)
	if err = disk.SaveProperties(store.All()); err != nil {
		log.Fatalf("could not save properties: %v", err)
	}
	log.Printf("saved %d properties to %s", store.Len(), dataDir)
}
