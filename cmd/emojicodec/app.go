package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-yaml"
	"github.com/urfave/cli/v2"

	"github.com/yyyoichi/emojicodec"
	"github.com/yyyoichi/emojicodec/internal/compress"
	"github.com/yyyoichi/emojicodec/internal/config"
	"github.com/yyyoichi/emojicodec/internal/log"
	"github.com/yyyoichi/emojicodec/internal/mimetype"
)

var version = "dev"

const (
	envPrefix    = "EMOJICODEC_"
	fallbackName = "decoded.bin"
	sniffLen     = 512
)

type state struct {
	cfg    *config.Config
	logger log.Logger
	codec  *emojicodec.Codec
}

func newApp() *cli.App {
	rt := &state{}
	return &cli.App{
		Name:    "emojicodec",
		Usage:   "encode text and files as emoji, and back",
		Version: version,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file",
				EnvVars: []string{envPrefix + "CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "trace, debug, info, warn or error; overrides the config file",
				EnvVars: []string{envPrefix + "LOG_LEVEL"},
			},
		},
		Before: rt.init,
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "encode text (arguments, or stdin without its final newline) or a file",
				ArgsUsage: "[text...]",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: "file", Aliases: []string{"f"}, Usage: "encode this file instead of text"},
					&cli.StringFlag{Name: "name", Usage: "file name stored in the frame (default: base name of --file)"},
					&cli.StringFlag{Name: "mime", Usage: "MIME type stored in the frame (default: detected)"},
					&cli.BoolFlag{Name: "zstd", Usage: "compress the file with zstd before encoding"},
				},
				Action: rt.encode,
			},
			{
				Name:      "decode",
				Usage:     "decode symbols (arguments or stdin) to text or a file",
				ArgsUsage: "[symbols...]",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: "out", Aliases: []string{"o"}, Usage: "write a decoded file here (default: output dir + frame name)"},
					&cli.BoolFlag{Name: "stdout", Usage: "write a decoded file's bytes to stdout"},
					&cli.BoolFlag{Name: "unzstd", Usage: "decompress a zstd file payload"},
				},
				Action: rt.decode,
			},
			{
				Name:      "count",
				Usage:     "count symbols and other characters",
				ArgsUsage: "[text...]",
				Action:    rt.count,
			},
			{
				Name:      "inspect",
				Usage:     "describe what a symbol sequence decodes to, as YAML",
				ArgsUsage: "[symbols...]",
				Action:    rt.inspect,
			},
		},
	}
}

func (rt *state) init(c *cli.Context) error {
	cfg, err := config.Load(c.Path("config"))
	if err != nil {
		return err
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}
	logger, err := log.New(c.App.ErrWriter, cfg.Log.Level)
	if err != nil {
		return err
	}
	codec, err := emojicodec.New(emojicodec.WithLogger(logger))
	if err != nil {
		return errors.Wrap(err, "failed to create codec")
	}
	rt.cfg, rt.logger, rt.codec = cfg, logger, codec
	return nil
}

// input returns the command arguments joined by spaces, or all of stdin when
// there are none. One trailing line ending is dropped from stdin.
func input(c *cli.Context) (string, error) {
	if c.NArg() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}
	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return "", errors.Wrap(err, "failed to read stdin")
	}
	s, ok := strings.CutSuffix(string(data), "\n")
	if ok {
		s = strings.TrimSuffix(s, "\r")
	}
	return s, nil
}

func (rt *state) encode(c *cli.Context) error {
	var in emojicodec.Input
	if path := c.Path("file"); path != "" {
		f, err := rt.readFile(path, c.String("name"), c.String("mime"), c.Bool("zstd"))
		if err != nil {
			return err
		}
		in = f
	} else {
		text, err := input(c)
		if err != nil {
			return err
		}
		in = emojicodec.Text(text)
	}

	out, err := rt.codec.Encode(in)
	if err != nil {
		return errors.Wrap(err, "failed to encode")
	}
	rt.logger.Debug().
		Str("kind", in.Kind().String()).
		Int("symbols", len([]rune(out))).
		Msg("encoded")
	_, err = fmt.Fprintln(c.App.Writer, out)
	return err
}

func (rt *state) readFile(path, name, mime string, zstd bool) (emojicodec.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return emojicodec.File{}, errors.Wrapf(err, "failed to read %q", path)
	}
	if name == "" {
		name = filepath.Base(path)
	}
	if mime == "" {
		mime = mimetype.Detect(name, data[:min(len(data), sniffLen)])
	}
	if zstd {
		size := len(data)
		data, err = compress.Compress(data)
		if err != nil {
			return emojicodec.File{}, errors.Wrapf(err, "failed to compress %q", path)
		}
		rt.logger.Debug().
			Int("size", size).
			Int("compressed", len(data)).
			Msg("compressed file")
		name, mime = compress.Name(name), compress.MIME
	}
	return emojicodec.File{Name: name, MIME: mime, Bytes: data}, nil
}

func (rt *state) decode(c *cli.Context) error {
	symbols, err := input(c)
	if err != nil {
		return err
	}

	switch in := rt.codec.Decode(symbols).(type) {
	case emojicodec.Text:
		_, err = fmt.Fprintln(c.App.Writer, string(in))
		return err
	case emojicodec.File:
		if c.Bool("unzstd") && in.MIME == compress.MIME {
			if in, err = unzstd(in); err != nil {
				return err
			}
		}
		if c.Bool("stdout") {
			_, err = c.App.Writer.Write(in.Bytes)
			return err
		}
		path := c.Path("out")
		if path == "" {
			path = filepath.Join(rt.cfg.Output.Dir, safeName(in.Name))
		}
		if err := os.WriteFile(path, in.Bytes, 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %q", path)
		}
		rt.logger.Info().
			Str("path", path).
			Str("mime", in.MIME).
			Int("size", len(in.Bytes)).
			Msg("wrote decoded file")
		return nil
	default:
		return errors.Newf("unexpected input kind %s", in.Kind())
	}
}

func unzstd(f emojicodec.File) (emojicodec.File, error) {
	data, err := compress.Decompress(f.Bytes)
	if err != nil && len(f.Bytes) > 0 && f.Bytes[len(f.Bytes)-1] == 0 {
		// a frame of 4 mod 5 bytes decodes with one extra zero byte
		data, err = compress.Decompress(f.Bytes[:len(f.Bytes)-1])
	}
	if err != nil {
		return f, errors.Wrapf(err, "failed to decompress %q", f.Name)
	}
	f.Name = compress.Original(f.Name)
	f.MIME = mimetype.Detect(f.Name, data[:min(len(data), sniffLen)])
	f.Bytes = data
	return f, nil
}

// safeName keeps only the last element of a frame name so a decoded file
// cannot land outside the output directory.
func safeName(name string) string {
	name = filepath.Base(filepath.Clean("/" + strings.ReplaceAll(name, `\`, "/")))
	if name == "/" || name == "." {
		return fallbackName
	}
	return name
}

func (rt *state) count(c *cli.Context) error {
	text, err := input(c)
	if err != nil {
		return err
	}
	symbols, others := rt.codec.Count(text)
	_, err = fmt.Fprintf(c.App.Writer, "%d symbols, %d other characters\n", symbols, others)
	return err
}

type report struct {
	Kind    string `yaml:"kind"`
	Symbols int    `yaml:"symbols"`
	Ignored int    `yaml:"ignored"`
	Bytes   int    `yaml:"bytes"`
	Name    string `yaml:"name,omitempty"`
	MIME    string `yaml:"mime,omitempty"`
	Chars   int    `yaml:"chars,omitempty"`
}

func (rt *state) inspect(c *cli.Context) error {
	symbols, err := input(c)
	if err != nil {
		return err
	}
	r := report{}
	r.Symbols, r.Ignored = rt.codec.Count(symbols)

	in := rt.codec.Decode(symbols)
	r.Kind = in.Kind().String()
	switch in := in.(type) {
	case emojicodec.Text:
		r.Bytes = len(in)
		r.Chars = len([]rune(string(in)))
	case emojicodec.File:
		r.Bytes = len(in.Bytes)
		r.Name = in.Name
		r.MIME = in.MIME
	}

	out, err := yaml.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "failed to marshal report")
	}
	_, err = c.App.Writer.Write(out)
	return err
}
