// Package asset resolves named images and sounds and caches them for the
// lifetime of the process.
package asset

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/draw"
)

// Resource names used by the game.
const (
	ImageShip           = "ship"
	ImageFighter        = "fighter"
	ImageRebelBullet    = "rebel-bullet"
	ImageRepublicBullet = "republic-bullet"
	ImageExplosion      = "explosion"
	SoundRaygun         = "sound-raygun"
	SoundExplosion      = "sound-explosion"
)

// Names lists every resource the game looks up, for validation at startup.
var Names = []string{
	ImageShip,
	ImageFighter,
	ImageRebelBullet,
	ImageRepublicBullet,
	ImageExplosion,
	SoundRaygun,
	SoundExplosion,
}

// ErrUnknownResource is returned for names no loader knows about.
var ErrUnknownResource = errors.New("unknown resource")

// Handle is an opaque resolved resource. Exactly one of Image and Sound is set.
type Handle struct {
	Name  string
	Image *draw.Image
	Sound audio.Generator
}

// Loader fetches a resource by name. It is called at most once per name.
type Loader func(name string) (Handle, error)

// Registry is a memoized name → handle table.
// It is safe for concurrent use; SSH sessions share one registry.
type Registry struct {
	mu     sync.Mutex
	load   Loader
	cached map[string]Handle
}

// NewRegistry creates a registry backed by the given loader.
func NewRegistry(load Loader) *Registry {
	return &Registry{
		load:   load,
		cached: make(map[string]Handle),
	}
}

// NewBuiltinRegistry creates a registry serving the embedded sprites and
// synthesized sounds.
func NewBuiltinRegistry() *Registry {
	return NewRegistry(LoadBuiltin)
}

// Resolve returns the handle for name, loading it on first use.
// Failed lookups are not cached.
func (r *Registry) Resolve(name string) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.cached[name]; ok {
		return h, nil
	}
	h, err := r.load(name)
	if err != nil {
		return Handle{}, fmt.Errorf("resolve %q: %w", name, err)
	}
	h.Name = name
	r.cached[name] = h
	return h, nil
}

// Image resolves name and returns it as an image. Implements draw.ImageSource.
func (r *Registry) Image(name string) (*draw.Image, error) {
	h, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	if h.Image == nil {
		return nil, fmt.Errorf("resource %q is not an image", name)
	}
	return h.Image, nil
}

// Validate resolves every name and reports all failures at once.
func (r *Registry) Validate(names ...string) error {
	var errs []error
	for _, name := range names {
		if _, err := r.Resolve(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Compile-time check that Registry implements draw.ImageSource.
var _ draw.ImageSource = (*Registry)(nil)

//go:embed sprites/*.txt
var sprites embed.FS

var builtinSounds = map[string]audio.Generator{
	SoundRaygun:    audio.Raygun,
	SoundExplosion: audio.Explosion,
}

// LoadBuiltin loads embedded sprites and synthesized sounds.
func LoadBuiltin(name string) (Handle, error) {
	if gen, ok := builtinSounds[name]; ok {
		return Handle{Name: name, Sound: gen}, nil
	}
	data, err := sprites.ReadFile("sprites/" + name + ".txt")
	if err != nil {
		return Handle{}, ErrUnknownResource
	}
	img, err := ParseSprite(string(data))
	if err != nil {
		return Handle{}, fmt.Errorf("sprite %q: %w", name, err)
	}
	return Handle{Name: name, Image: img}, nil
}

// ParseSprite reads the sprite text format: a header line
// "#RRGGBB width height" followed by rows of glyph art.
// Rows are padded with spaces to the widest row.
func ParseSprite(src string) (*draw.Image, error) {
	sc := bufio.NewScanner(strings.NewReader(src))
	if !sc.Scan() {
		return nil, errors.New("missing header")
	}

	var hex string
	var width, height float64
	if _, err := fmt.Sscanf(sc.Text(), "%s %g %g", &hex, &width, &height); err != nil {
		return nil, fmt.Errorf("parse header %q: %w", sc.Text(), err)
	}
	color, err := draw.ParseColor(hex)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %gx%g", width, height)
	}

	img := &draw.Image{Width: width, Height: height, Color: color}
	maxLen := 0
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		img.Rows = append(img.Rows, []rune(line))
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(img.Rows) == 0 || maxLen == 0 {
		return nil, errors.New("empty sprite")
	}
	for i, row := range img.Rows {
		for len(row) < maxLen {
			row = append(row, ' ')
		}
		img.Rows[i] = row
	}
	return img, nil
}
