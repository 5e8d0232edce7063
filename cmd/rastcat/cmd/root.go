/*
Copyright © 2024 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	"github.com/blacktop/go-termrast"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	verbose        bool
	backendName    string
	pixelationName string
	widthCells     int
	heightCells    int
	fitWidth       bool
	fitHeight      bool
	upscale        bool
	upscaleInteger bool
	widthStretch   float32
	noAntialias    bool
	bgColor        string
	patternColor   string
	patternSize    int
	use8Bit        bool
	compressLevel  uint8
	delayBetween   time.Duration
)

func init() {
	log.SetHandler(clihander.Default)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable verbose logging")
	rootCmd.Flags().StringVarP(&backendName, "backend", "b", "auto", "Rendering backend (auto, unicode, kitty, iterm2, sixel)")
	rootCmd.Flags().StringVarP(&pixelationName, "pixelation", "p", "quarter", "Unicode pixelation mode (half, quarter)")
	rootCmd.Flags().IntVarP(&widthCells, "width", "w", 0, "Width budget in cells (0 = fit terminal)")
	rootCmd.Flags().IntVarP(&heightCells, "height", "H", 0, "Height budget in cells (0 = fit terminal)")
	rootCmd.Flags().BoolVar(&fitWidth, "fit-width", false, "Fill the width budget even if height overflows")
	rootCmd.Flags().BoolVar(&fitHeight, "fit-height", false, "Fill the height budget even if width overflows")
	rootCmd.Flags().BoolVarP(&upscale, "upscale", "u", false, "Allow enlarging small images")
	rootCmd.Flags().BoolVar(&upscaleInteger, "upscale-integer", false, "Restrict upscaling to integer factors")
	rootCmd.Flags().Float32VarP(&widthStretch, "stretch", "s", 0, "Width stretch factor (0 = auto from cell aspect)")
	rootCmd.Flags().BoolVar(&noAntialias, "no-antialias", false, "Use nearest-neighbor resampling")
	rootCmd.Flags().StringVar(&bgColor, "bg", "", "Background color for transparent pixels (#rrggbb)")
	rootCmd.Flags().StringVar(&patternColor, "pattern", "", "Checkerboard pattern color (#rrggbb)")
	rootCmd.Flags().IntVar(&patternSize, "pattern-size", 1, "Checkerboard pattern scale")
	rootCmd.Flags().BoolVar(&use8Bit, "8bit", false, "Emit 256-color escapes instead of 24-bit")
	rootCmd.Flags().Uint8VarP(&compressLevel, "compress", "z", 1, "PNG compression hint for graphics protocols (0-9)")
	rootCmd.Flags().DurationVar(&delayBetween, "delay", 0, "Pause between multiple images")
}

var rootCmd = &cobra.Command{
	Use:   "rastcat <image>...",
	Short: "Rasterize images into your terminal.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		options, kind, err := buildOptions()
		if err != nil {
			return err
		}

		backend := termrast.AutoBackend(kind)
		if backend.Kind() != termrast.BackendUnicode && termrast.InMultiplexer() {
			termrast.EnableTmuxPassthrough()
		}

		log.Debugf("terminal: %dx%d cells, backend: %s",
			options.Terminal.Columns, options.Terminal.Rows, backend.Name())

		for i, path := range args {
			if i > 0 && delayBetween > 0 {
				time.Sleep(delayBetween)
			}
			if err := renderFile(backend, path, options); err != nil {
				return err
			}
		}
		return nil
	},
}

func buildOptions() (termrast.RenderOptions, termrast.BackendKind, error) {
	var zero termrast.RenderOptions

	kind, err := termrast.ParseBackendKind(backendName)
	if err != nil {
		return zero, 0, err
	}

	pixelation, err := termrast.ParsePixelationMode(pixelationName)
	if err != nil {
		return zero, 0, err
	}

	terminal := termrast.CurrentTerminalSize()

	sizing := termrast.DefaultSizing()
	sizing.WidthCells = widthCells
	sizing.HeightCells = heightCells
	sizing.FitWidth = fitWidth
	sizing.FitHeight = fitHeight
	sizing.Upscale = upscale
	sizing.UpscaleInteger = upscaleInteger
	sizing.Antialias = !noAntialias
	if widthStretch > 0 {
		sizing.WidthStretch = widthStretch
	} else {
		sizing.WidthStretch = terminal.RecommendedWidthStretch()
	}

	background := termrast.BackgroundStyle{PatternSize: patternSize}
	if bgColor != "" {
		c, err := termrast.ParseRGB(bgColor)
		if err != nil {
			return zero, 0, err
		}
		background.Color = &c
	}
	if patternColor != "" {
		c, err := termrast.ParseRGB(patternColor)
		if err != nil {
			return zero, 0, err
		}
		background.Pattern = &c
	}

	return termrast.RenderOptions{
		Sizing:        sizing,
		Terminal:      terminal,
		Background:    background,
		Pixelation:    pixelation,
		Use8BitColor:  use8Bit,
		CompressLevel: compressLevel,
		Verbose:       verbose,
	}, kind, nil
}

func renderFile(backend termrast.Backend, path string, options termrast.RenderOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	log.Debugf("decoded %s as %s", path, format)

	frame := termrast.SingleFrame(img)
	rendered, err := backend.Render(frame, options)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}

	for _, line := range rendered.Lines {
		fmt.Println(line)
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
