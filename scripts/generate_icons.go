//go:build ignore

// Generates the tray icons.
// Usage: go run scripts/generate_icons.go [dir]
package main

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
)

func main() {
	dir := "embedded"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("create %s: %v", dir, err)
	}

	icons := []struct {
		name  string
		color color.RGBA
	}{
		{"icon.png", color.RGBA{68, 68, 68, 255}},
		{"icon_error.png", color.RGBA{220, 50, 50, 255}},
	}

	for _, icon := range icons {
		path := filepath.Join(dir, icon.name)
		if err := generateIcon(path, icon.color); err != nil {
			log.Fatalf("generate %s: %v", icon.name, err)
		}
		log.Printf("wrote %s", path)
	}
}

// generateIcon draws a keyboard: a body in c with light keys and a
// space bar.
func generateIcon(path string, c color.RGBA) error {
	const size = 64
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	key := color.RGBA{235, 235, 235, 255}

	fill := func(x0, y0, x1, y1 int, col color.RGBA) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				img.Set(x, y, col)
			}
		}
	}

	fill(4, 16, 60, 48, c)
	for row := 0; row < 2; row++ {
		for col := 0; col < 6; col++ {
			x := 8 + col*9
			y := 20 + row*8
			fill(x, y, x+6, y+6, key)
		}
	}
	fill(16, 37, 48, 43, key)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
