// Package archive registers the zip tools.
package archive

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"toolbox/pkg/tool"
)

// Register adds the archive tools to the registry.
func Register(r *tool.Registry) error {
	tools := []tool.Tool{
		zipTool(),
		unzipTool(),
	}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", t.ID, err)
		}
	}
	return nil
}

func zipTool() tool.Tool {
	return tool.Tool{
		ID:          "archive.zip",
		Title:       "Create Zip",
		Category:    tool.CategoryArchive,
		Description: "Create a zip archive from multiple files",
		Keywords:    []string{"compress", "archive", "bundle", "package"},
		Input: tool.InputSpec{
			Kind:     tool.InputFile,
			Accept:   []string{"*/*"},
			Multiple: true,
			Label:    "Drop files to zip",
		},
		Output: tool.OutputSpec{
			Kind:     tool.OutputFile,
			MIME:     "application/zip",
			Filename: "archive.zip",
		},
		Options: []tool.OptionField{
			{Name: "compressionLevel", Type: tool.OptionInteger, Description: "Compression level (0=none, 9=max)", Min: tool.FloatPtr(0), Max: tool.FloatPtr(9), Default: 6},
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			if len(input.Files) < 1 {
				return tool.Output{}, tool.ErrInvalidInput("Please select at least 1 file to zip")
			}

			rc.Message("Creating zip archive...")

			level := opts.Int("compressionLevel")
			var buf bytes.Buffer
			zw := zip.NewWriter(&buf)
			zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
				return flate.NewWriter(out, level)
			})

			for i, file := range input.Files {
				if err := rc.Err(); err != nil {
					return tool.Output{}, err
				}
				rc.Progress(float64(i)/float64(len(input.Files))*80, fmt.Sprintf("Adding %s...", file.Name))

				method := zip.Deflate
				if level == 0 {
					method = zip.Store
				}
				w, err := zw.CreateHeader(&zip.FileHeader{Name: file.Name, Method: method})
				if err != nil {
					return tool.Output{}, fmt.Errorf("failed to add %s to archive: %w", file.Name, err)
				}
				if _, err := w.Write(file.Data); err != nil {
					return tool.Output{}, fmt.Errorf("failed to write %s to archive: %w", file.Name, err)
				}
			}

			rc.Progress(80, "Compressing...")
			if err := zw.Close(); err != nil {
				return tool.Output{}, fmt.Errorf("failed to finalize archive: %w", err)
			}
			rc.Progress(100, "Done")

			return tool.FileOutput("archive.zip", "application/zip", buf.Bytes()), nil
		},
	}
}

func unzipTool() tool.Tool {
	return tool.Tool{
		ID:          "archive.unzip",
		Title:       "Extract Zip",
		Category:    tool.CategoryArchive,
		Description: "Extract files from a zip archive",
		Keywords:    []string{"decompress", "unarchive", "extract", "unpack"},
		Input: tool.InputSpec{
			Kind:   tool.InputFile,
			Accept: []string{".zip", "application/zip", "application/x-zip-compressed"},
			Label:  "Drop zip file here",
		},
		Output: tool.OutputSpec{
			Kind:     tool.OutputFile,
			MIME:     "application/zip",
			Filename: "extracted.zip",
		},
		Run: func(rc *tool.RunContext, input tool.Input, opts tool.Options) (tool.Output, error) {
			file := input.Files[0]

			rc.Message("Reading zip archive...")

			zr, err := zip.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
			if err != nil {
				return tool.Output{}, tool.ErrMalformedWrap(err, "Invalid zip archive: %s", err.Error())
			}

			var entries []*zip.File
			for _, entry := range zr.File {
				if !entry.FileInfo().IsDir() {
					entries = append(entries, entry)
				}
			}
			if len(entries) == 0 {
				return tool.Output{}, tool.ErrInvalidInput("Zip archive is empty")
			}

			extracted := make([]tool.File, 0, len(entries))
			for i, entry := range entries {
				if err := rc.Err(); err != nil {
					return tool.Output{}, err
				}
				rc.Progress(float64(i)/float64(len(entries))*100, fmt.Sprintf("Extracting %s...", entry.Name))

				r, err := entry.Open()
				if err != nil {
					return tool.Output{}, tool.ErrMalformedWrap(err, "Failed to extract %s: %s", entry.Name, err.Error())
				}
				data, err := io.ReadAll(r)
				r.Close()
				if err != nil {
					return tool.Output{}, tool.ErrMalformedWrap(err, "Failed to extract %s: %s", entry.Name, err.Error())
				}
				extracted = append(extracted, tool.File{Name: entry.Name, Data: data})
			}
			rc.Progress(100, "Done")

			// A single entry is returned directly instead of re-archived.
			if len(extracted) == 1 {
				only := extracted[0]
				return tool.FileOutput(only.Name, mimeFor(only.Name), only.Data), nil
			}

			var buf bytes.Buffer
			zw := zip.NewWriter(&buf)
			for _, f := range extracted {
				w, err := zw.Create(f.Name)
				if err != nil {
					return tool.Output{}, fmt.Errorf("failed to repackage %s: %w", f.Name, err)
				}
				if _, err := w.Write(f.Data); err != nil {
					return tool.Output{}, fmt.Errorf("failed to repackage %s: %w", f.Name, err)
				}
			}
			if err := zw.Close(); err != nil {
				return tool.Output{}, fmt.Errorf("failed to finalize archive: %w", err)
			}
			return tool.FileOutput("extracted.zip", "application/zip", buf.Bytes()), nil
		},
	}
}

func mimeFor(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
