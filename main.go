package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"imgdoc/internal/adapters/codec"
	"imgdoc/internal/adapters/file"
	"imgdoc/internal/core/document"
	"imgdoc/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	viper.AddConfigPath(".")
	viper.SetConfigType("toml")
	viper.SetDefault("scale.algorithm", "lanczos")

	if err := viper.ReadInConfig(); err != nil {
		log.Debug().Err(err).Msg("no config file, using defaults")
	}

	var logLevel zerolog.Level

	switch viper.GetString("log.level") {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: imgdoc <input> <output> [WxH] [algorithm]")
		os.Exit(2)
	}

	input, output := os.Args[1], os.Args[2]

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	src := domain.FromPath(input)
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		data, err := file.Fetch(ctx, input)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to download input")
		}
		src = domain.FromBytes(data)
	}

	d, err := document.Load(ctx, codec.NewImaging(), src, viper.GetString("input.format"))
	if err != nil {
		log.Fatal().Err(err).Str("input", input).Msg("failed to load image")
	}

	if len(os.Args) > 3 {
		w, h, err := parseSize(os.Args[3])
		if err != nil {
			log.Fatal().Err(err).Msg("invalid target size")
		}

		algorithm := viper.GetString("scale.algorithm")
		if len(os.Args) > 4 {
			algorithm = os.Args[4]
		}

		opts := &domain.ScaleOpts{
			QType:     viper.GetString("scale.qtype"),
			Constrain: viper.GetString("scale.constrain"),
		}

		if _, err := d.Scale(ctx, w, h, algorithm, opts); err != nil {
			log.Fatal().Err(err).Msg("failed to scale image")
		}
	}

	if f := viper.GetString("output.format"); f != "" {
		d.SetFormat(f)
	} else if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
		d.SetFormat(ext)
	}

	data, err := d.Bytes(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("format", d.Format()).Msg("failed to encode image")
	}

	if err := file.WriteAtomic(output, data); err != nil {
		log.Fatal().Err(err).Str("output", output).Msg("failed to write output")
	}

	log.Info().Str("output", output).Str("format", d.Format()).Int("bytes", len(data)).Msg("wrote image")
}

// parseSize parses "WxH" where either side may be empty to keep the aspect
// ratio, e.g. "800x600", "800x" or "x600".
func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q", s)
	}

	var w, h int
	var err error

	if parts[0] != "" {
		if w, err = strconv.Atoi(parts[0]); err != nil {
			return 0, 0, fmt.Errorf("invalid size %q", s)
		}
	}
	if parts[1] != "" {
		if h, err = strconv.Atoi(parts[1]); err != nil {
			return 0, 0, fmt.Errorf("invalid size %q", s)
		}
	}

	if w == 0 && h == 0 {
		return 0, 0, fmt.Errorf("invalid size %q", s)
	}

	return w, h, nil
}
