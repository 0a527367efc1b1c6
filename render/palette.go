package render

import (
	"fmt"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	ColorBackground = "background"
	ColorText       = "text"
	ColorTrack      = "track"
	ColorSpecial    = "special"
)

// Palette maps color roles to colors. Roles without a configured color get a
// random color on first use, which is then kept.
type Palette struct {
	mu     sync.Mutex
	colors map[string]colorful.Color
}

func NewPalette() *Palette {
	return &Palette{
		colors: make(map[string]colorful.Color),
	}
}

// ParsePalette builds a palette from hex color strings keyed by role.
func ParsePalette(hexColors map[string]string) (*Palette, error) {
	p := NewPalette()
	for role, hex := range hexColors {
		if err := p.SetHex(role, hex); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Palette) Set(role string, c colorful.Color) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.colors[role] = c
}

func (p *Palette) SetHex(role, hex string) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("color '%s': %w", role, err)
	}

	p.Set(role, c)
	return nil
}

func (p *Palette) Color(role string) colorful.Color {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.colors[role]
	if !ok {
		c = colorful.HappyColor()
		p.colors[role] = c
	}

	return c
}

func (p *Palette) HexColor(role string) string {
	return p.Color(role).Hex()
}
