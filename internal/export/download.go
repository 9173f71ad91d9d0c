package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/san-kum/fboinator/internal/chart"
	"github.com/san-kum/fboinator/internal/series"
)

const (
	FileStem = "fboinator"
	SVGName  = FileStem + ".svg"
	PNGName  = FileStem + ".png"
	CSVName  = FileStem + ".csv"
)

// Downloader delivers export files into Dir. Each file is staged in a
// temporary handle that is released whether or not the export succeeds.
type Downloader struct {
	Dir        string
	Rasterizer Rasterizer
}

func NewDownloader(dir string) *Downloader {
	return &Downloader{Dir: dir}
}

// Save stages render's output in a temporary file and renames it to name
// on success. On any failure the temporary file is removed and nothing is
// left under name.
func (d *Downloader) Save(name string, render func(io.Writer) error) (path string, err error) {
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(d.Dir, "."+name+".*")
	if err != nil {
		return "", err
	}
	closed := false
	defer func() {
		if !closed {
			tmp.Close()
		}
		if err != nil {
			if rmErr := os.Remove(tmp.Name()); rmErr != nil && !os.IsNotExist(rmErr) {
				log.WithError(rmErr).WithField("path", tmp.Name()).Warn("failed to release export handle")
			}
		}
	}()

	if err = render(tmp); err != nil {
		return "", err
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return "", err
	}
	path = filepath.Join(d.Dir, name)
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

// SVG writes fboinator.svg.
func (d *Downloader) SVG(scene *chart.Scene) (string, error) {
	doc := SVG(scene)
	if doc == nil {
		return "", ErrNoData
	}
	return d.Save(SVGName, func(w io.Writer) error {
		_, err := w.Write(doc)
		return err
	})
}

// PNG writes fboinator.png. Rasterization happens inside the staged write so
// a decode failure still releases the handle.
func (d *Downloader) PNG(scene *chart.Scene) (string, error) {
	if scene == nil {
		return "", ErrNoData
	}
	return d.Save(PNGName, func(w io.Writer) error {
		img, err := d.Rasterizer.PNG(scene)
		if err != nil {
			return fmt.Errorf("rasterize: %w", err)
		}
		_, err = io.Copy(w, bytes.NewReader(img))
		return err
	})
}

// CSV writes fboinator.csv.
func (d *Downloader) CSV(rows []series.Row) (string, error) {
	if len(rows) == 0 {
		return "", ErrNoData
	}
	return d.Save(CSVName, func(w io.Writer) error {
		return WriteCSV(w, rows)
	})
}
