package io

import (
	"fmt"
	"io/fs"
	"log"
	"regexp"
	"strconv"

	"github.com/ezrec/x64emu/cpu"
)

// IMAGE_SUFFIX is the file name suffix of a saved segment.
const IMAGE_SUFFIX = ".seg"

var imagePattern = regexp.MustCompile(`(?i)^[0-9a-f]{16}\.seg$`)

// Image saves and restores the allocated segments of a DRAM, as one file
// per segment named by its 16 hex digit start address.
type Image struct {
	Verbose bool // Set to enable verbose logging.
}

// Save writes each allocated segment of dram to filesys.
func (img *Image) Save(dram *cpu.DRAM, filesys CreateFS) (err error) {
	for start, data := range dram.Segments() {
		name := fmt.Sprintf("%016x%v", start, IMAGE_SUFFIX)
		if img.Verbose {
			log.Printf("image: save %v (%d bytes)", name, len(data))
		}
		err = img.save(filesys, name, data)
		if err != nil {
			err = &ErrImage{Name: name, Err: err}
			return
		}
	}

	return
}

func (img *Image) save(filesys CreateFS, name string, data []byte) (err error) {
	file, err := filesys.Create(name)
	if err != nil {
		return
	}

	_, err = file.Write(data)
	close_err := file.Close()
	if err == nil {
		err = close_err
	}

	return
}

// Load restores the segment files in filesys into dram, backing memory as
// needed. Other files are ignored.
func (img *Image) Load(dram *cpu.DRAM, filesys fs.FS) (err error) {
	entries, err := fs.ReadDir(filesys, ".")
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !imagePattern.MatchString(name) {
			continue
		}

		err = img.load(dram, filesys, name)
		if err != nil {
			err = &ErrImage{Name: name, Err: err}
			return
		}
	}

	return
}

func (img *Image) load(dram *cpu.DRAM, filesys fs.FS, name string) (err error) {
	start, err := strconv.ParseUint(name[:len(name)-len(IMAGE_SUFFIX)], 16, 64)
	if err != nil {
		return
	}

	data, err := fs.ReadFile(filesys, name)
	if err != nil {
		return
	}

	if img.Verbose {
		log.Printf("image: load %v (%d bytes)", name, len(data))
	}

	if len(data) == 0 {
		return
	}

	err = dram.AllocRange(start, uint64(len(data)))
	if err != nil {
		return
	}

	return dram.WriteBytes(start, data)
}
