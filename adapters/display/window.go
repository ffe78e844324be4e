package display

import (
	"bytes"
	"image"
	"image/png"
	"log"

	"clockrate/internal/errors"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
)

// Viewer shows rendered charts in a desktop window
type Viewer struct {
	newApp func() fyne.App
}

// NewViewer creates a viewer backed by the platform fyne driver
func NewViewer() *Viewer {
	return &Viewer{newApp: func() fyne.App { return app.NewWithID("com.clockrate.viewer") }}
}

// Show opens a window with the PNG image and blocks until the window is closed
func (v *Viewer) Show(title string, pngData []byte) error {
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return errors.RenderError("failed to decode chart image", err)
	}

	w := newImageWindow(v.newApp(), title, img)
	log.Printf("[Viewer] showing %q, close the window to exit", title)
	w.ShowAndRun()
	return nil
}

// newImageWindow builds a window sized to the image that scales it to fit on resize
func newImageWindow(a fyne.App, title string, img image.Image) fyne.Window {
	w := a.NewWindow(title)

	c := canvas.NewImageFromImage(img)
	c.FillMode = canvas.ImageFillContain
	size := fyne.NewSize(float32(img.Bounds().Dx()), float32(img.Bounds().Dy()))
	c.SetMinSize(fyne.NewSize(size.Width/2, size.Height/2))

	w.SetContent(c)
	w.Resize(size)
	return w
}
