package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"resume-builder/internal/config"
	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	in := flag.String("in", "resume.json", "exported snapshot file")
	format := flag.String("format", "pdf", "output format: html, md or pdf")
	out := flag.String("out", "", "output file (default: input name with the format extension)")
	cfgPath := flag.String("config", "", "YAML config file (default: CONFIG_PATH or ./config.yaml)")
	flag.Parse()

	if err := run(*cfgPath, *in, strings.ToLower(*format), *out); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, in, format, out string) error {
	load := config.Load
	if cfgPath != "" {
		load = func() (*config.Config, error) { return config.LoadFile(cfgPath) }
	}
	cfg, err := load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	infra.NewLogger(cfg.Log, os.Stderr)

	raw, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	snap, err := usecase.Deserialize(raw, domain.NewSnapshot())
	if err != nil {
		return fmt.Errorf("read snapshot %s: %w", in, err)
	}
	if out == "" {
		out = strings.TrimSuffix(in, ".json") + "." + format
	}

	p := usecase.NewProcessor(infra.NewChromedpRenderer(cfg.Render), nil)
	var data []byte
	switch format {
	case "html":
		html, err := p.RenderHTML(snap)
		if err != nil {
			return err
		}
		data = []byte(html)
	case "md", "markdown":
		md, err := p.RenderMarkdown(snap)
		if err != nil {
			return err
		}
		data = []byte(md)
	case "pdf":
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Render.Timeout*3)
		defer cancel()
		if data, err = p.ExportPDF(ctx, snap); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	slog.Info("rendered", "in", in, "out", out, "format", format, "bytes", len(data))
	return nil
}
