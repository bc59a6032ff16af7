// Package levels loads the level catalogue: the ASCII maps, their blast
// radius, and the timing values shared by every host.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Bomb-Maze/internal/board"
)

//go:embed data
var embedded embed.FS

// DefaultPath is the catalogue location inside the embedded data.
const DefaultPath = "data/levels.yaml"

var (
	ErrNoLevels      = errors.New("levels: catalogue has no levels")
	ErrInvalidLevel  = errors.New("levels: invalid level")
	ErrInvalidTuning = errors.New("levels: invalid tuning")
)

// Tuning holds the timing values. Durations are in seconds and converted to
// whole simulation ticks with Ticks.
type Tuning struct {
	TicksPerSecond       int     `yaml:"ticks_per_second"`
	FuseSeconds          float64 `yaml:"fuse_seconds"`
	PlayerSecondsPerCell float64 `yaml:"player_seconds_per_cell"`
	EnemySecondsPerCell  float64 `yaml:"enemy_seconds_per_cell"`
	ExplosionSeconds     float64 `yaml:"explosion_seconds"`
	LoadingSeconds       float64 `yaml:"loading_seconds"`
}

// DefaultTuning matches the embedded catalogue.
var DefaultTuning = Tuning{
	TicksPerSecond:       60,
	FuseSeconds:          2.5,
	PlayerSecondsPerCell: 0.1,
	EnemySecondsPerCell:  0.2,
	ExplosionSeconds:     0.5,
	LoadingSeconds:       0.15,
}

// Ticks converts seconds to ticks, rounding to nearest and never below one.
func (t Tuning) Ticks(seconds float64) int {
	n := int(math.Round(seconds * float64(t.TicksPerSecond)))
	return max(n, 1)
}

func (t Tuning) validate() error {
	if t.TicksPerSecond <= 0 {
		return fmt.Errorf("%w: ticks_per_second=%d", ErrInvalidTuning, t.TicksPerSecond)
	}
	for name, v := range map[string]float64{
		"fuse_seconds":            t.FuseSeconds,
		"player_seconds_per_cell": t.PlayerSecondsPerCell,
		"enemy_seconds_per_cell":  t.EnemySecondsPerCell,
		"explosion_seconds":       t.ExplosionSeconds,
		"loading_seconds":         t.LoadingSeconds,
	} {
		if !(v > 0) {
			return fmt.Errorf("%w: %s=%v", ErrInvalidTuning, name, v)
		}
	}
	return nil
}

// Level is one entry of the catalogue. Map holds the map text once loaded.
type Level struct {
	Name        string `yaml:"name"`
	MapFile     string `yaml:"map"`
	BlastRadius int    `yaml:"blast_radius"`

	Map string `yaml:"-"`
}

// Board parses a fresh board for the level with its blast radius applied.
func (l Level) Board() (*board.Board, error) {
	b, err := board.Parse(l.Map)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", l.Name, err)
	}
	b.SetBlastRadius(l.BlastRadius)
	return b, nil
}

// Catalogue is the ordered list of levels plus shared tuning.
type Catalogue struct {
	Tuning Tuning  `yaml:"tuning"`
	Levels []Level `yaml:"levels"`
}

// Len returns the number of levels.
func (c *Catalogue) Len() int { return len(c.Levels) }

// Level returns the level at index i, or false when i is out of range.
func (c *Catalogue) Level(i int) (Level, bool) {
	if i < 0 || i >= len(c.Levels) {
		return Level{}, false
	}
	return c.Levels[i], true
}

// Load reads a catalogue from fsys. Map paths are resolved relative to the
// directory of name. Missing tuning keys fall back to DefaultTuning.
func Load(fsys fs.FS, name string) (*Catalogue, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	cat := &Catalogue{Tuning: DefaultTuning}
	if err := yaml.Unmarshal(raw, cat); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if err := cat.Tuning.validate(); err != nil {
		return nil, err
	}
	if len(cat.Levels) == 0 {
		return nil, ErrNoLevels
	}

	dir := path.Dir(name)
	for i := range cat.Levels {
		l := &cat.Levels[i]
		if l.Name == "" {
			l.Name = fmt.Sprintf("Level %d", i+1)
		}
		if l.BlastRadius < 1 {
			return nil, fmt.Errorf("%w %q: blast_radius=%d", ErrInvalidLevel, l.Name, l.BlastRadius)
		}
		if l.MapFile == "" {
			return nil, fmt.Errorf("%w %q: no map file", ErrInvalidLevel, l.Name)
		}
		text, err := fs.ReadFile(fsys, path.Join(dir, l.MapFile))
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidLevel, l.Name, err)
		}
		l.Map = string(text)
		if _, err := board.Parse(l.Map); err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidLevel, l.Name, err)
		}
	}
	return cat, nil
}

// LoadFile reads a catalogue from disk.
func LoadFile(file string) (*Catalogue, error) {
	return Load(os.DirFS(filepath.Dir(file)), filepath.Base(file))
}

// Default returns the embedded catalogue. It panics if the embedded assets
// are broken, which is a build defect.
func Default() *Catalogue {
	cat, err := Load(embedded, DefaultPath)
	if err != nil {
		panic(err)
	}
	return cat
}

// Resolve returns the embedded catalogue when file is empty, otherwise the
// catalogue at file. Used by the -config flag of every command.
func Resolve(file string) (*Catalogue, error) {
	if file == "" {
		return Load(embedded, DefaultPath)
	}
	return LoadFile(file)
}
