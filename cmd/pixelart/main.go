package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bodgit/pixelart"
	"github.com/bodgit/pixelart/export"
	"github.com/bodgit/pixelart/grid"
	"github.com/bodgit/pixelart/quant"
	"github.com/bodgit/pixelart/rle"
	"github.com/bodgit/pixelart/tui"
)

const defaultDB = "pixelart.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func quantizeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "resolution",
			Aliases: []string{"r"},
			Value:   grid.Resolutions[0],
			Usage:   "grid side length (32, 64, 128 or 256)",
		},
		&cli.Float64Flag{
			Name:  "threshold",
			Value: quant.DefaultOptions().DistanceThreshold,
			Usage: "background color distance threshold",
		},
		&cli.UintFlag{
			Name:  "alpha-cutoff",
			Value: uint(quant.DefaultOptions().AlphaCutoff),
			Usage: "source alpha below which pixels are discarded",
		},
		&cli.StringFlag{
			Name:  "background",
			Value: "topleft",
			Usage: "background reference mode (topleft or dominant)",
		},
	}
}

func optionsFromFlags(c *cli.Context) (quant.Options, error) {
	opt := quant.DefaultOptions()
	opt.DistanceThreshold = c.Float64("threshold")
	opt.AlphaCutoff = uint8(c.Uint("alpha-cutoff"))

	switch c.String("background") {
	case "topleft":
		opt.Background = quant.BackgroundTopLeft
	case "dominant":
		opt.Background = quant.BackgroundDominant
	default:
		return opt, fmt.Errorf("unknown background mode %q", c.String("background"))
	}
	return opt, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	return m, err
}

func loadRecord(path string) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return rle.Read(f)
}

func writeRecord(path string, g *grid.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return rle.Write(f, g)
}

func main() {
	app := cli.NewApp()

	app.Name = "pixelart"
	app.Usage = "Pixel-art grid conversion and editing utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PIXELART_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to canvas library",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Quantize an image into a pixel-art grid record",
			Description: "Reads a PNG, GIF or JPEG image, removes its background and writes the run-length encoded JSON record.",
			ArgsUsage:   "IMAGE",
			Flags: append(quantizeFlags(),
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "record file to write, defaults to stdout",
				}),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				opt, err := optionsFromFlags(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				m, err := loadImage(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				g, err := quant.Quantize(m, c.Int("resolution"), opt)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if out := c.String("output"); out != "" {
					if err := writeRecord(out, g); err != nil {
						return cli.Exit(err, 1)
					}
					return nil
				}
				if err := rle.Write(os.Stdout, g); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
		{
			Name:        "export",
			Usage:       "Render a grid record into a scaled PNG",
			Description: "Opaque cells become solid pixel-aligned blocks; transparent cells stay transparent.",
			ArgsUsage:   "RECORD",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "scale",
					Aliases: []string{"s"},
					Value:   export.DefaultScale,
					Usage:   "block size of each grid cell in pixels",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "out.png",
					Usage:   "PNG file to write",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				g, err := loadRecord(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				f, err := os.Create(c.String("output"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer f.Close()

				if err := export.Encode(f, g, c.Int("scale")); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
		{
			Name:        "edit",
			Usage:       "Edit a grid interactively in the terminal",
			Description: "FILE is either a grid record or an image to quantize first. The w key writes the record back out.",
			ArgsUsage:   "FILE",
			Flags: append(quantizeFlags(),
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "record file the w key writes, defaults to FILE with a .json extension",
				}),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				file := c.Args().First()
				session := pixelart.NewSession(newLogger(c))

				var source image.Image
				opt, err := optionsFromFlags(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				var g *grid.Grid
				if strings.EqualFold(filepath.Ext(file), ".json") {
					if g, err = loadRecord(file); err != nil {
						return cli.Exit(err, 1)
					}
				} else {
					if source, err = loadImage(file); err != nil {
						return cli.Exit(err, 1)
					}
					if g, err = quant.Quantize(source, c.Int("resolution"), opt); err != nil {
						return cli.Exit(err, 1)
					}
				}
				session.SetGrid(g)

				out := c.String("output")
				if out == "" {
					out = strings.TrimSuffix(file, filepath.Ext(file)) + ".json"
				}

				editor := tui.New(session, func(g *grid.Grid) error {
					return writeRecord(out, g)
				})
				if source != nil {
					editor.SetSource(source, opt)
				}

				if err := editor.Run(c.Context); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
		{
			Name:  "db",
			Usage: "Manage the canvas library",
			Subcommands: []*cli.Command{
				{
					Name:      "save",
					Usage:     "Store a grid record under a name",
					ArgsUsage: "NAME RECORD",
					Action: func(c *cli.Context) error {
						if c.NArg() < 2 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						g, err := loadRecord(c.Args().Get(1))
						if err != nil {
							return cli.Exit(err, 1)
						}

						db, err := pixelart.NewGridDB(c.String("db"))
						if err != nil {
							return cli.Exit(err, 1)
						}
						defer db.Close()

						if err := db.SaveGrid(c.Args().First(), g); err != nil {
							return cli.Exit(err, 1)
						}
						return nil
					},
				},
				{
					Name:      "load",
					Usage:     "Write a stored canvas back out as a record",
					ArgsUsage: "NAME",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:    "output",
							Aliases: []string{"o"},
							Usage:   "record file to write, defaults to stdout",
						},
					},
					Action: func(c *cli.Context) error {
						if c.NArg() < 1 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						db, err := pixelart.NewGridDB(c.String("db"))
						if err != nil {
							return cli.Exit(err, 1)
						}
						defer db.Close()

						g, err := db.LoadGrid(c.Args().First())
						if err != nil {
							return cli.Exit(err, 1)
						}

						if out := c.String("output"); out != "" {
							if err := writeRecord(out, g); err != nil {
								return cli.Exit(err, 1)
							}
							return nil
						}
						if err := rle.Write(os.Stdout, g); err != nil {
							return cli.Exit(err, 1)
						}
						return nil
					},
				},
				{
					Name:  "list",
					Usage: "List stored canvases",
					Action: func(c *cli.Context) error {
						db, err := pixelart.NewGridDB(c.String("db"))
						if err != nil {
							return cli.Exit(err, 1)
						}
						defer db.Close()

						infos, err := db.ListGrids()
						if err != nil {
							return cli.Exit(err, 1)
						}
						for _, info := range infos {
							fmt.Printf("%s\t%dx%d\t%s\n", info.Name, info.Resolution, info.Resolution, info.SHA1)
						}
						return nil
					},
				},
				{
					Name:      "delete",
					Usage:     "Remove a stored canvas",
					ArgsUsage: "NAME",
					Action: func(c *cli.Context) error {
						if c.NArg() < 1 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						db, err := pixelart.NewGridDB(c.String("db"))
						if err != nil {
							return cli.Exit(err, 1)
						}
						defer db.Close()

						if err := db.DeleteGrid(c.Args().First()); err != nil {
							return cli.Exit(err, 1)
						}
						return nil
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
