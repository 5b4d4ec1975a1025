// Package image registers the raster image tools: convert, compress,
// resize, crop, and rotate. Decoding covers PNG, JPEG, and GIF; WebP
// has no Go encoder and is rejected as an output format.
package image

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"math"

	_ "image/gif"

	xdraw "golang.org/x/image/draw"

	"toolbox/pkg/tool"
)

// Register adds the image tools to the registry.
func Register(r *tool.Registry) error {
	tools := []tool.Tool{
		convertTool(),
		compressTool(),
		resizeTool(),
		cropTool(),
		rotateTool(),
	}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", t.ID, err)
		}
	}
	return nil
}

func decode(file tool.File) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(file.Data))
	if err != nil {
		return nil, tool.ErrMalformedWrap(err, "Failed to load image")
	}
	return img, nil
}

// flatten composites an image over a white background, for formats
// without an alpha channel.
func flatten(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, bounds, img, bounds.Min, draw.Over)
	return out
}

func encode(img image.Image, format string, quality int) ([]byte, string, string, error) {
	var buf bytes.Buffer
	switch format {
	case "jpeg":
		if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: quality}); err != nil {
			return nil, "", "", err
		}
		return buf.Bytes(), "image/jpeg", "jpg", nil
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", "", err
		}
		return buf.Bytes(), "image/png", "png", nil
	default:
		return nil, "", "", tool.ErrUnsupported("Encoding to %s is not supported. Supported output formats: png, jpeg.", format)
	}
}

func convertTool() tool.Tool {
	return tool.Tool{
		ID:          "image.convert",
		Title:       "Convert Image",
		Category:    tool.CategoryImage,
		Description: "Convert images between PNG and JPEG",
		Keywords:    []string{"format", "png", "jpg", "webp"},
		Input: tool.InputSpec{
			Kind:   tool.InputFile,
			Accept: []string{"image/*"},
			Label:  "Drop an image here",
		},
		Output: tool.OutputSpec{
			Kind:     tool.OutputFile,
			MIME:     "image/png",
			Filename: "converted.png",
		},
		Options: []tool.OptionField{
			{Name: "format", Type: tool.OptionString, Description: "Output format", Enum: []string{"png", "jpeg", "webp"}, Default: "png"},
			{Name: "quality", Type: tool.OptionInteger, Description: "Quality for JPEG", Min: tool.FloatPtr(1), Max: tool.FloatPtr(100), Default: 90},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			rc.Message("Loading image...")
			img, err := decode(input.Files[0])
			if err != nil {
				return tool.Output{}, err
			}

			rc.Message("Converting...")
			data, mimeType, ext, err := encode(img, opts.String("format"), opts.Int("quality"))
			if err != nil {
				return tool.Output{}, err
			}
			return tool.FileOutput("converted."+ext, mimeType, data), nil
		},
	}
}

func compressTool() tool.Tool {
	return tool.Tool{
		ID:          "image.compress",
		Title:       "Compress Image",
		Category:    tool.CategoryImage,
		Description: "Reduce image file size with quality control",
		Keywords:    []string{"reduce", "optimize", "quality", "size"},
		Input: tool.InputSpec{
			Kind:   tool.InputFile,
			Accept: []string{"image/*"},
			Label:  "Drop an image here",
		},
		Output: tool.OutputSpec{
			Kind:     tool.OutputFile,
			MIME:     "image/jpeg",
			Filename: "compressed.jpg",
		},
		Options: []tool.OptionField{
			{Name: "quality", Type: tool.OptionInteger, Description: "Output quality (1-100)", Min: tool.FloatPtr(1), Max: tool.FloatPtr(100), Default: 80},
			{Name: "format", Type: tool.OptionString, Description: "Output format", Enum: []string{"jpeg", "webp", "png"}, Default: "jpeg"},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			rc.Message("Loading image...")
			img, err := decode(input.Files[0])
			if err != nil {
				return tool.Output{}, err
			}

			rc.Message("Compressing...")
			data, mimeType, ext, err := encode(img, opts.String("format"), opts.Int("quality"))
			if err != nil {
				return tool.Output{}, err
			}
			return tool.FileOutput("compressed."+ext, mimeType, data), nil
		},
	}
}

func resizeTool() tool.Tool {
	return tool.Tool{
		ID:          "image.resize",
		Title:       "Resize Image",
		Category:    tool.CategoryImage,
		Description: "Resize images by pixels or percentage",
		Keywords:    []string{"scale", "dimension", "size", "width", "height"},
		Input: tool.InputSpec{
			Kind:   tool.InputFile,
			Accept: []string{"image/*"},
			Label:  "Drop an image here",
		},
		Output: tool.OutputSpec{
			Kind:     tool.OutputFile,
			MIME:     "image/png",
			Filename: "resized.png",
		},
		Options: []tool.OptionField{
			{Name: "mode", Type: tool.OptionString, Description: "Resize mode", Enum: []string{"pixels", "percentage"}, Default: "percentage"},
			{Name: "width", Type: tool.OptionInteger, Description: "Width (pixels or %)", Min: tool.FloatPtr(1), Max: tool.FloatPtr(10000), Default: 50},
			{Name: "height", Type: tool.OptionInteger, Description: "Height (pixels or %)", Min: tool.FloatPtr(1), Max: tool.FloatPtr(10000), Default: 50},
			{Name: "maintainAspectRatio", Type: tool.OptionBoolean, Description: "Maintain aspect ratio", Default: true},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			rc.Message("Loading image...")
			img, err := decode(input.Files[0])
			if err != nil {
				return tool.Output{}, err
			}

			rc.Message("Resizing...")
			srcW := img.Bounds().Dx()
			srcH := img.Bounds().Dy()
			width := opts.Int("width")
			height := opts.Int("height")
			keepAspect := opts.Bool("maintainAspectRatio")

			var newW, newH int
			if opts.String("mode") == "percentage" {
				newW = int(math.Round(float64(srcW) * float64(width) / 100))
				if keepAspect {
					newH = int(math.Round(float64(srcH) * float64(width) / 100))
				} else {
					newH = int(math.Round(float64(srcH) * float64(height) / 100))
				}
			} else {
				newW = width
				if keepAspect {
					newH = int(math.Round(float64(srcH) * float64(width) / float64(srcW)))
				} else {
					newH = height
				}
			}
			if newW < 1 {
				newW = 1
			}
			if newH < 1 {
				newH = 1
			}

			dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
			xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)

			var buf bytes.Buffer
			if err := png.Encode(&buf, dst); err != nil {
				return tool.Output{}, fmt.Errorf("failed to resize image: %w", err)
			}
			return tool.FileOutput("resized.png", "image/png", buf.Bytes()), nil
		},
	}
}

func cropTool() tool.Tool {
	return tool.Tool{
		ID:          "image.crop",
		Title:       "Crop Image",
		Category:    tool.CategoryImage,
		Description: "Crop images to a specific region",
		Keywords:    []string{"trim", "cut", "region", "selection"},
		Input: tool.InputSpec{
			Kind:   tool.InputFile,
			Accept: []string{"image/*"},
			Label:  "Drop an image here",
		},
		Output: tool.OutputSpec{
			Kind:     tool.OutputFile,
			MIME:     "image/png",
			Filename: "cropped.png",
		},
		Options: []tool.OptionField{
			{Name: "x", Type: tool.OptionInteger, Description: "X offset (pixels from left)", Min: tool.FloatPtr(0), Default: 0},
			{Name: "y", Type: tool.OptionInteger, Description: "Y offset (pixels from top)", Min: tool.FloatPtr(0), Default: 0},
			{Name: "width", Type: tool.OptionInteger, Description: "Crop width (pixels)", Min: tool.FloatPtr(1), Default: 100},
			{Name: "height", Type: tool.OptionInteger, Description: "Crop height (pixels)", Min: tool.FloatPtr(1), Default: 100},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			rc.Message("Loading image...")
			img, err := decode(input.Files[0])
			if err != nil {
				return tool.Output{}, err
			}

			x := opts.Int("x")
			y := opts.Int("y")
			width := opts.Int("width")
			height := opts.Int("height")

			srcW := img.Bounds().Dx()
			srcH := img.Bounds().Dy()
			if x+width > srcW {
				return tool.Output{}, tool.ErrUnsupported("Crop region exceeds image width (%dpx)", srcW)
			}
			if y+height > srcH {
				return tool.Output{}, tool.ErrUnsupported("Crop region exceeds image height (%dpx)", srcH)
			}

			rc.Message("Cropping...")
			dst := image.NewRGBA(image.Rect(0, 0, width, height))
			draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min.Add(image.Pt(x, y)), draw.Src)

			var buf bytes.Buffer
			if err := png.Encode(&buf, dst); err != nil {
				return tool.Output{}, fmt.Errorf("failed to crop image: %w", err)
			}
			return tool.FileOutput("cropped.png", "image/png", buf.Bytes()), nil
		},
	}
}

func rotateTool() tool.Tool {
	return tool.Tool{
		ID:          "image.rotate",
		Title:       "Rotate Image",
		Category:    tool.CategoryImage,
		Description: "Rotate and flip images",
		Keywords:    []string{"turn", "flip", "mirror", "orientation"},
		Input: tool.InputSpec{
			Kind:   tool.InputFile,
			Accept: []string{"image/*"},
			Label:  "Drop an image here",
		},
		Output: tool.OutputSpec{
			Kind:     tool.OutputFile,
			MIME:     "image/png",
			Filename: "rotated.png",
		},
		Options: []tool.OptionField{
			{Name: "rotation", Type: tool.OptionString, Description: "Rotation angle (clockwise)", Enum: []string{"90", "180", "270"}, Default: "90"},
			{Name: "flipHorizontal", Type: tool.OptionBoolean, Description: "Flip horizontally", Default: false},
			{Name: "flipVertical", Type: tool.OptionBoolean, Description: "Flip vertically", Default: false},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			rc.Message("Loading image...")
			img, err := decode(input.Files[0])
			if err != nil {
				return tool.Output{}, err
			}

			rc.Message("Rotating...")
			src := toRGBA(img)
			if opts.Bool("flipHorizontal") {
				src = flipH(src)
			}
			if opts.Bool("flipVertical") {
				src = flipV(src)
			}

			switch opts.String("rotation") {
			case "90":
				src = rotate90(src)
			case "180":
				src = rotate180(src)
			case "270":
				src = rotate270(src)
			}

			var buf bytes.Buffer
			if err := png.Encode(&buf, src); err != nil {
				return tool.Output{}, fmt.Errorf("failed to rotate image: %w", err)
			}
			return tool.FileOutput("rotated.png", "image/png", buf.Bytes()), nil
		},
	}
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	return out
}

func flipH(src *image.RGBA) *image.RGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(w-1-x, y, src.At(x, y))
		}
	}
	return out
}

func flipV(src *image.RGBA) *image.RGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(x, h-1-y, src.At(x, y))
		}
	}
	return out
}

// rotate90 rotates a quarter turn clockwise.
func rotate90(src *image.RGBA) *image.RGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	out := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(h-1-y, x, src.At(x, y))
		}
	}
	return out
}

func rotate180(src *image.RGBA) *image.RGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(w-1-x, h-1-y, src.At(x, y))
		}
	}
	return out
}

func rotate270(src *image.RGBA) *image.RGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	out := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(y, w-1-x, src.At(x, y))
		}
	}
	return out
}
