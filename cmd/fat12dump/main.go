package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/dosimg/fat12"
)

// main is a small diagnostic tool for FAT12 images: it prints the volume
// geometry, dumps the FAT or the root directory, verifies a file's chain and
// writes file contents to stdout.
func main() {
	args := os.Args[1:]
	if len(args) < 1 {
		usage()
	}

	fs, err := fat12.Mount(args[0])
	if err != nil {
		log.WithError(err).Fatal("could not mount image")
	}
	defer fs.Close()

	command := "info"
	if len(args) > 1 {
		command = args[1]
	}

	switch command {
	case "info":
		info := fs.Info()
		fmt.Printf("volume label:       %s\n", fs.Label())
		fmt.Printf("block size:         %d\n", info.BlockSize)
		fmt.Printf("total blocks:       %d\n", info.TotalBlocks)
		fmt.Printf("FAT blocks:         %d (offset %d, %d copies, %d entries)\n",
			info.FatBlocks, info.FatBlockOffset, info.NumFats, info.FatEntries)
		fmt.Printf("root dir entries:   %d (offset %d)\n", info.RootDirEntries, info.RootDirOffset)
		fmt.Printf("data region origin: %d\n", info.DataRegionOrigin)

	case "fat":
		if err := fs.DumpFat(os.Stdout); err != nil {
			log.WithError(err).Fatal("could not dump FAT")
		}

	case "dir":
		if err := fs.DumpDirectory(os.Stdout); err != nil {
			log.WithError(err).Fatal("could not dump root directory")
		}

	case "verify":
		if len(args) < 3 {
			usage()
		}
		index, err := fs.Search(args[2])
		if err != nil {
			log.WithError(err).Fatal("could not find file")
		}
		fmt.Println(fs.VerifyIntegrity(index))

	case "cat":
		if len(args) < 3 {
			usage()
		}
		index, err := fs.Search(args[2])
		if err != nil {
			log.WithError(err).Fatal("could not find file")
		}
		entry, err := fs.Entry(index)
		if err != nil {
			log.WithError(err).Fatal("could not read directory entry")
		}
		data, err := fs.ReadRange(args[2], 0, int64(entry.FileSize))
		if err != nil {
			log.WithError(err).Fatal("could not read file")
		}
		os.Stdout.Write(data)

	default:
		usage()
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <image> [info|fat|dir|verify <NAME.EXT>|cat <NAME.EXT>]\n", os.Args[0])
	os.Exit(1)
}
