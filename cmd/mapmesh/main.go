// mapmesh is a CLI utility for building and inspecting MSP board map meshes.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/msp-map-editor/internal/assets"
	"github.com/Faultbox/msp-map-editor/internal/board"
	"github.com/Faultbox/msp-map-editor/internal/config"
	"github.com/Faultbox/msp-map-editor/internal/engine/camera"
	"github.com/Faultbox/msp-map-editor/internal/engine/mapmesh"
	"github.com/Faultbox/msp-map-editor/internal/engine/picking"
	"github.com/Faultbox/msp-map-editor/internal/engine/scene"
	"github.com/Faultbox/msp-map-editor/internal/export"
	"github.com/Faultbox/msp-map-editor/internal/logger"
	"github.com/Faultbox/msp-map-editor/internal/mapfile"
	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

func main() {
	flag.Usage = printUsage
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	mapmesh.SetLogger(logger.Named("mapmesh"))

	command := args[0]
	rest := args[1:]

	switch command {
	case "stats", "info":
		err = cmdStats(cfg, rest)
	case "obj", "export":
		err = cmdOBJ(cfg, rest)
	case "highlight", "hl":
		err = cmdHighlight(cfg, rest)
	case "pick":
		err = cmdPick(cfg, rest)
	case "path":
		err = cmdPath(rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mapmesh - MSP board map mesh utility

Usage:
  mapmesh [global options] <command> [options]

Commands:
  stats <map.json>                        Show tile and geometry counts
  obj <map.json> [-o file]                Export the map mesh as OBJ
  highlight <map.json> <x1> <y1> <x2> <y2> [-o file]
                                          Export a highlight overlay as OBJ
  pick <map.json> <px> <py> [-width w] [-height h] [-view center|top-down]
                                          Show the tile under a viewport pixel
  path <map.json> <x1> <y1> <x2> <y2> [-key]
                                          Find a route between two tiles

Global options:
  -config <file>    Config file (default: ./config.yaml or the user config dir)
  -debug            Enable debug logging
  -out-dir <dir>    Directory for exported meshes
  -log-file <file>  Write logs to this file as well

Examples:
  mapmesh stats boards/castle.json
  mapmesh -debug obj boards/castle.json
  mapmesh obj boards/castle.json -o - > castle.obj
  mapmesh highlight boards/castle.json 0 0 3 2
  mapmesh pick boards/castle.json 640 360 -view top-down
  mapmesh path boards/castle.json 0 0 7 4 -key`)
}

// session is one loaded map with the scene it is previewed in.
type session struct {
	cfg     *config.Config
	store   *assets.Store
	preview *scene.Previewer
	scene   *scene.Scene
	m       *mapfile.Map
}

func open(cfg *config.Config, path string) (*session, error) {
	m, err := mapfile.Load(path)
	if err != nil {
		return nil, err
	}

	meshCfg, err := builderConfig(cfg)
	if err != nil {
		return nil, err
	}

	store := assets.NewStore()
	atlas := cfg.Assets.Atlas
	if m.Atlas != "" {
		atlas = m.Atlas
	}
	res := store.Resources(assets.Paths{
		Atlas:   atlas,
		Floor:   cfg.Assets.Floor,
		KeyGate: cfg.Assets.KeyGate,
	})

	sc := scene.New(store)
	logger.Debug("loaded map",
		zap.String("path", path),
		zap.Int("cols", m.Grid.Cols()),
		zap.Int("rows", m.Grid.Rows()),
		zap.String("atlas", atlas))

	return &session{
		cfg:     cfg,
		store:   store,
		preview: scene.NewPreviewer(sc, mapmesh.New(store, res, meshCfg)),
		scene:   sc,
		m:       m,
	}, nil
}

// builderConfig converts the preview colors to engine colors.
func builderConfig(cfg *config.Config) (mapmesh.Config, error) {
	out := mapmesh.Config{HighlightOffset: cfg.Preview.HighlightOffset}
	colors := []struct {
		value string
		dst   *mapmesh.Color
	}{
		{cfg.Preview.BlockColor, &out.BlockColor},
		{cfg.Preview.TrimColor, &out.TrimColor},
		{cfg.Preview.HighlightColor, &out.HighlightColor},
	}
	for _, c := range colors {
		rgba, err := config.ParseColor(c.value)
		if err != nil {
			return out, err
		}
		*c.dst = mapmesh.RGBA8(rgba[0], rgba[1], rgba[2], rgba[3])
	}
	return out, nil
}

func cmdStats(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: mapmesh stats <map.json>")
	}
	s, err := open(cfg, args[0])
	if err != nil {
		return err
	}

	id := s.preview.Remesh(s.m.Grid)
	b, _ := s.scene.Bundle(id)
	st := b.Stats()

	fmt.Printf("Map:       %s\n", args[0])
	fmt.Printf("Size:      %dx%d\n", s.m.Grid.Cols(), s.m.Grid.Rows())
	fmt.Printf("Tiles:     %d\n", st.Tiles)
	fmt.Printf("Vertices:  %d\n", st.Vertices())
	fmt.Printf("Triangles: %d\n", st.Triangles())
	fmt.Printf("Key gates: %d\n", st.Props)
	fmt.Println()
	fmt.Println("Objects:")
	for _, o := range st.Objects {
		fmt.Printf("  %-8s %6d verts %6d tris\n", o.Name, o.Vertices, o.Triangles)
	}

	as := s.store.Stats()
	logger.Debug("asset store",
		zap.Int("meshes", as.Meshes),
		zap.Int("materials", as.Materials))
	return nil
}

func cmdOBJ(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("obj", flag.ExitOnError)
	out := fs.String("o", "", "Output file, - for stdout (default: <out-dir>/<map>.obj)")
	if err := fs.Parse(reorder(fs, args)); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: mapmesh obj <map.json> [-o file]")
	}

	s, err := open(cfg, fs.Arg(0))
	if err != nil {
		return err
	}
	id := s.preview.Remesh(s.m.Grid)
	b, _ := s.scene.Bundle(id)
	return s.write(b, outputPath(cfg, *out, fs.Arg(0), ""))
}

func cmdHighlight(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("highlight", flag.ExitOnError)
	out := fs.String("o", "", "Output file, - for stdout (default: <out-dir>/<map>.highlight.obj)")
	if err := fs.Parse(reorder(fs, args)); err != nil {
		return err
	}
	if fs.NArg() < 5 {
		return fmt.Errorf("usage: mapmesh highlight <map.json> <x1> <y1> <x2> <y2>")
	}

	a, b, err := parsePoints(fs.Args()[1:5])
	if err != nil {
		return err
	}
	r := tilemap.NewTileRange(a, b)

	s, err := open(cfg, fs.Arg(0))
	if err != nil {
		return err
	}
	id := s.preview.Highlight(s.m.Grid, r)
	bundle, _ := s.scene.Bundle(id)
	if bundle.Stats().Tiles == 0 {
		logger.Warn("highlight range is outside the map",
			zap.Int("cols", s.m.Grid.Cols()),
			zap.Int("rows", s.m.Grid.Rows()))
	}
	return s.write(bundle, outputPath(cfg, *out, fs.Arg(0), ".highlight"))
}

func cmdPick(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("pick", flag.ExitOnError)
	width := fs.Int("width", 1280, "Viewport width in pixels")
	height := fs.Int("height", 720, "Viewport height in pixels")
	view := fs.String("view", camera.ViewCenter.String(), "Camera preset: center or top-down")
	if err := fs.Parse(reorder(fs, args)); err != nil {
		return err
	}
	if fs.NArg() < 3 {
		return fmt.Errorf("usage: mapmesh pick <map.json> <px> <py>")
	}
	if *width < 1 || *height < 1 {
		return fmt.Errorf("viewport %dx%d is empty", *width, *height)
	}
	preset, ok := camera.ParsePresetView(*view)
	if !ok {
		return fmt.Errorf("unknown view %q", *view)
	}
	px, err := strconv.ParseFloat(fs.Arg(1), 32)
	if err != nil {
		return fmt.Errorf("pixel x %q: %w", fs.Arg(1), err)
	}
	py, err := strconv.ParseFloat(fs.Arg(2), 32)
	if err != nil {
		return fmt.Errorf("pixel y %q: %w", fs.Arg(2), err)
	}

	m, err := mapfile.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	cam := camera.NewOrbitCamera()
	cam.Preset(preset, m.Grid, m.Grid.Bounds())

	w, h := float32(*width), float32(*height)
	ray := picking.ScreenToRay(float32(px), float32(py), w, h, cam.ViewProj(w/h).Inv())
	hit, ok := picking.PickTile(m.Grid, ray)
	logger.Debug("pick",
		zap.Stringer("view", preset),
		zap.Float32s("origin", ray.Origin[:]),
		zap.Float32s("direction", ray.Direction[:]))
	if !ok {
		fmt.Printf("No tile under (%g, %g)\n", px, py)
		return nil
	}

	tile := m.Grid.At(hit.Tile.X, hit.Tile.Y)
	fmt.Printf("Tile:     (%d, %d)\n", hit.Tile.X, hit.Tile.Y)
	fmt.Printf("Height:   %v\n", tile.Height)
	fmt.Printf("Material: %v\n", tile.Materials.Top)
	fmt.Printf("Hit at:   (%.3f, %.3f, %.3f)\n", hit.Position.X(), hit.Position.Y(), hit.Position.Z())
	return nil
}

func cmdPath(args []string) error {
	fs := flag.NewFlagSet("path", flag.ExitOnError)
	key := fs.Bool("key", false, "Allow crossing locked connections")
	if err := fs.Parse(reorder(fs, args)); err != nil {
		return err
	}
	if fs.NArg() < 5 {
		return fmt.Errorf("usage: mapmesh path <map.json> <x1> <y1> <x2> <y2> [-key]")
	}
	start, goal, err := parsePoints(fs.Args()[1:5])
	if err != nil {
		return err
	}

	m, err := mapfile.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	pf := board.NewPathFinder(m.Grid, board.Rules{HasKey: *key})
	path := pf.FindPath(start, goal)
	if path == nil {
		fmt.Printf("No route from (%d, %d) to (%d, %d)\n", start.X, start.Y, goal.X, goal.Y)
		fmt.Printf("Reachable from start: %d tiles\n", len(pf.Reachable(start)))
		return nil
	}

	steps := make([]string, len(path))
	for i, p := range path {
		steps[i] = fmt.Sprintf("(%d, %d)", p.X, p.Y)
	}
	fmt.Printf("Steps: %d\n", len(path)-1)
	fmt.Println(strings.Join(steps, " -> "))
	return nil
}

// parsePoints reads "x1 y1 x2 y2" into two points.
func parsePoints(args []string) (a, b tilemap.Point, err error) {
	var v [4]int
	for i := range v {
		if v[i], err = strconv.Atoi(args[i]); err != nil {
			return a, b, fmt.Errorf("coordinate %q: %w", args[i], err)
		}
	}
	return tilemap.Pt(v[0], v[1]), tilemap.Pt(v[2], v[3]), nil
}

func (s *session) write(b *mapmesh.Bundle, path string) error {
	groups, err := export.Groups(b, s.store)
	if err != nil {
		return err
	}
	opts := export.Options{Normals: s.cfg.Export.Normals}

	if path == "-" {
		return export.WriteOBJ(os.Stdout, groups, opts)
	}
	if err := export.WriteFile(path, groups, opts); err != nil {
		return err
	}
	st := b.Stats()
	logger.Info("wrote mesh",
		zap.String("path", path),
		zap.String("tag", b.Tag.String()),
		zap.Int("vertices", st.Vertices()),
		zap.Int("triangles", st.Triangles()))
	return nil
}

func outputPath(cfg *config.Config, explicit, mapPath, suffix string) string {
	if explicit != "" {
		return explicit
	}
	base := strings.TrimSuffix(filepath.Base(mapPath), filepath.Ext(mapPath))
	return filepath.Join(cfg.Export.OutDir, base+suffix+".obj")
}

// reorder moves flags ahead of positional arguments so "obj map.json -o x"
// parses the same as "obj -o x map.json".
func reorder(fs *flag.FlagSet, args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if len(a) < 2 || !strings.HasPrefix(a, "-") || isNumber(a) {
			positional = append(positional, a)
			continue
		}
		flags = append(flags, a)
		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") || isBoolFlag(fs, name) {
			continue
		}
		if i+1 < len(args) {
			flags = append(flags, args[i+1])
			i++
		}
	}
	return append(flags, positional...)
}

func isBoolFlag(fs *flag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
