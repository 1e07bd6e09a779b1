package io

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/ezrec/x64emu/cpu"
	"github.com/stretchr/testify/assert"
)

// memFS is a CreateFS backed by a fstest.MapFS.
type memFS struct {
	files fstest.MapFS
}

type memFile struct {
	bytes.Buffer
	files fstest.MapFS
	name  string
}

func (mf *memFile) Close() error {
	mf.files[mf.name] = &fstest.MapFile{Data: mf.Bytes(), Mode: 0644}
	return nil
}

func (mfs *memFS) Sub(name string) (sub CreateFS, err error) {
	err = fs.ErrNotExist
	return
}

func (mfs *memFS) Create(name string) (file io.WriteCloser, err error) {
	file = &memFile{files: mfs.files, name: name}
	return
}

func (mfs *memFS) Mkdir(name string, filemode fs.FileMode) (err error) {
	err = fs.ErrPermission
	return
}

func TestImage_SaveLoad(t *testing.T) {
	assert := assert.New(t)

	dram := cpu.NewDRAM(0x100000, 0x100000)
	for _, address := range []uint64{0x100000, 0x104000, 0x1f0000} {
		_, err := dram.Alloc(address, 0x1000)
		assert.NoError(err)
		assert.NoError(dram.WriteBytes(address+0x10, []byte{byte(address >> 12), 0xaa}))
	}

	mfs := &memFS{files: fstest.MapFS{}}
	img := &Image{}
	assert.NoError(img.Save(dram, mfs))

	assert.Len(mfs.files, 3)
	assert.Contains(mfs.files, "0000000000104000.seg")
	assert.Len(mfs.files["00000000001f0000.seg"].Data, 0x1000)

	// Unrelated files are skipped.
	mfs.files["README"] = &fstest.MapFile{Data: []byte("hello")}
	mfs.files["0000000000180000.seg.bak"] = &fstest.MapFile{Data: []byte("junk")}

	restored := cpu.NewDRAM(0x100000, 0x100000)
	assert.NoError(img.Load(restored, mfs.files))

	var expected, actual [][]byte
	for _, data := range dram.Segments() {
		expected = append(expected, bytes.Clone(data))
	}
	for _, data := range restored.Segments() {
		actual = append(actual, bytes.Clone(data))
	}
	assert.Equal(expected, actual)

	value, err := restored.Read8(0x104010)
	assert.NoError(err)
	assert.Equal(uint8(0x04), value)
}

func TestImage_LoadErrors(t *testing.T) {
	assert := assert.New(t)

	files := fstest.MapFS{
		"0000000000001000.seg": &fstest.MapFile{Data: []byte{1, 2, 3}},
	}

	dram := cpu.NewDRAM(0x100000, 0x1000)
	img := &Image{}
	err := img.Load(dram, files)
	assert.ErrorIs(err, cpu.ErrOutOfBounds{})

	var img_err *ErrImage
	assert.ErrorAs(err, &img_err)
	assert.Equal("0000000000001000.seg", img_err.Name)
}

func TestImage_LoadOverlap(t *testing.T) {
	assert := assert.New(t)

	// Segment files that round up to overlapping allocations still load.
	files := fstest.MapFS{
		"0000000000000000.seg": &fstest.MapFile{Data: bytes.Repeat([]byte{1}, 0x5000)},
		"0000000000006000.seg": &fstest.MapFile{Data: bytes.Repeat([]byte{2}, 0x1000)},
	}

	dram := cpu.NewDRAM(0, 0x10000)
	img := &Image{}
	assert.NoError(img.Load(dram, files))

	for address, expected := range map[uint64]uint8{0x0: 1, 0x4fff: 1, 0x5000: 0, 0x6000: 2, 0x6fff: 2} {
		value, err := dram.Read8(address)
		assert.NoError(err)
		assert.Equal(expected, value, "%#x", address)
	}
}

func TestDirFS(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	dfs := DirFS(dir)

	assert.NoError(dfs.Mkdir("image", 0755))
	sub, err := dfs.Sub("image")
	assert.NoError(err)

	dram := cpu.NewDRAM(0, 0x10000)
	_, err = dram.Alloc(0x2000, 0x10)
	assert.NoError(err)
	assert.NoError(dram.Write8(0x2004, 0x42))

	img := &Image{}
	assert.NoError(img.Save(dram, sub))

	data, err := os.ReadFile(filepath.Join(dir, "image", "0000000000002000.seg"))
	assert.NoError(err)
	assert.Len(data, 0x1000)
	assert.Equal(byte(0x42), data[4])

	restored := cpu.NewDRAM(0, 0x10000)
	assert.NoError(img.Load(restored, DirFS(filepath.Join(dir, "image"))))
	value, err := restored.Read8(0x2004)
	assert.NoError(err)
	assert.Equal(uint8(0x42), value)

	_, err = dfs.Sub("missing")
	assert.ErrorIs(err, fs.ErrNotExist)

	_, err = dfs.Create("../escape")
	assert.ErrorIs(err, fs.ErrInvalid)
}
