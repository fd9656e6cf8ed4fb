package main

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"qoipix"
	"qoipix/utilities/corpus"
	"qoipix/utilities/pixelsource"
)

func main() {
	app := cli.App{
		Name:  "qoipix",
		Usage: "Transcode images to and from the qoipix format",
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "Compress an image file (PNG, JPEG, GIF, BMP, TIFF)",
				Action:    encodeImage,
				ArgsUsage: "INPUT",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output path (default: INPUT with a .qoi suffix)",
					},
					&cli.UintFlag{
						Name:  "colorspace",
						Usage: "colorspace byte carried in the header",
					},
				},
			},
			{
				Name:      "decode",
				Usage:     "Decompress a stream back to PNG",
				Action:    decodeImage,
				ArgsUsage: "INPUT",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output path (default: INPUT with a .png suffix)",
					},
				},
			},
			{
				Name:      "verify",
				Usage:     "Round-trip every sample image in a directory",
				Action:    verifyCorpus,
				ArgsUsage: "DIR",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "report",
						Usage: "write a per-sample CSV report to this path",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func encodeImage(context *cli.Context) error {
	if context.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file")
	}
	inputPath := context.Args().First()

	source, err := pixelsource.FromFile(inputPath)
	if err != nil {
		return err
	}

	colorspace := context.Uint("colorspace")
	if colorspace > 255 {
		return fmt.Errorf("colorspace must fit in one byte, got %d", colorspace)
	}

	encoded, err := qoipix.Encode(
		source.Pixels, source.Width, source.Height, byte(colorspace))
	if err != nil {
		return err
	}

	outputPath := context.String("output")
	if outputPath == "" {
		outputPath = replaceSuffix(inputPath, ".qoi")
	}
	if err := os.WriteFile(outputPath, encoded, 0o644); err != nil {
		return err
	}

	fmt.Printf(
		"%s: %d -> %d bytes (%.1f%%)\n",
		outputPath,
		len(source.Pixels),
		len(encoded),
		100*float64(len(encoded))/float64(len(source.Pixels)),
	)
	return nil
}

func decodeImage(context *cli.Context) error {
	if context.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file")
	}
	inputPath := context.Args().First()

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	decoded, err := qoipix.Decode(data)
	if err != nil {
		return err
	}

	expected := int(decoded.Width) * int(decoded.Height) * 4
	if len(decoded.Pixels) != expected {
		return fmt.Errorf(
			"stream delivered %d pixel bytes but its header promised %d",
			len(decoded.Pixels), expected)
	}

	img := &image.NRGBA{
		Pix:    decoded.Pixels,
		Stride: int(decoded.Width) * 4,
		Rect:   image.Rect(0, 0, int(decoded.Width), int(decoded.Height)),
	}

	outputPath := context.String("output")
	if outputPath == "" {
		outputPath = replaceSuffix(inputPath, ".png")
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, img)
}

func verifyCorpus(context *cli.Context) error {
	if context.NArg() != 1 {
		return fmt.Errorf("expected exactly one sample directory")
	}

	report, err := corpus.Run(context.Args().First())
	if err != nil {
		return err
	}

	if reportPath := context.String("report"); reportPath != "" {
		out, err := os.Create(reportPath)
		if err != nil {
			return err
		}
		defer out.Close()
		if err := report.WriteCSV(out); err != nil {
			return err
		}
	}

	fmt.Printf(
		"%d samples, %d failed\n",
		len(report.Results),
		len(report.Failures()),
	)
	return report.Err()
}

func replaceSuffix(path, suffix string) string {
	if dot := strings.LastIndexByte(path, '.'); dot > 0 {
		return path[:dot] + suffix
	}
	return path + suffix
}
